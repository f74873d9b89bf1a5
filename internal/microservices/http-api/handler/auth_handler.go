package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"watchmate/internal/microservices/http-api/dto"
	"watchmate/internal/microservices/http-api/middleware"
	"watchmate/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	errs        errorResponder
}

func NewAuthHandler(authService service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, errs: errorResponder{logger: logger}}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Password2)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Response: "Registration Successful!",
		Username: user.Username,
		Email:    user.Email,
		Token:    token.Key,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, detail("username and password are required."))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.errs.respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Response: "Login successful.",
		Username: user.Username,
		Email:    user.Email,
		Token:    token.Key,
	})
}

// Logout deletes the presented token. It always answers 200 so that calling
// it twice, or without a token, is harmless.
func (h *AuthHandler) Logout(c *gin.Context) {
	key, err := middleware.TokenFromHeader(c)
	if err != nil {
		key = ""
	}

	deleted, err := h.authService.Logout(c.Request.Context(), key)
	if err != nil {
		h.errs.respond(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, detail("Already logged out."))
		return
	}
	c.JSON(http.StatusOK, detail("Logged out."))
}
