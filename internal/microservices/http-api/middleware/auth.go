package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"watchmate/internal/microservices/http-api/models"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authenticate.
const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextToken  = "token"
)

var errMalformedHeader = errors.New("malformed authorization header")

// TokenFromHeader extracts the key from "Token <key>" or "Bearer <key>".
// It returns "" with a nil error when no Authorization header was sent.
func TokenFromHeader(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", nil
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || (!strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer")) {
		return "", errMalformedHeader
	}
	return parts[1], nil
}

// Authenticate resolves the request's token to a user. Requests without an
// Authorization header continue anonymously; a bad header or unknown token is
// rejected with 401.
func Authenticate(authService service.AuthService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := TokenFromHeader(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token header."})
			return
		}
		if key == "" {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), key)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) {
				logger.Error("token lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextToken, key)
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func abortNotAuthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Token")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abortNotAuthenticated(c)
			return
		}
		c.Next()
	}
}

// AdminOrReadOnly lets anyone read and only admins write.
func AdminOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		user := CurrentUser(c)
		if user == nil {
			abortNotAuthenticated(c)
			return
		}
		if !user.IsAdmin() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// AuthenticatedWriteOrReadOnly lets anyone read and requires a user for
// writes. Object ownership is checked by the service once the object is loaded.
func AuthenticatedWriteOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if CurrentUser(c) == nil {
			abortNotAuthenticated(c)
			return
		}
		c.Next()
	}
}
