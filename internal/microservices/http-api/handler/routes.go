package handler

import (
	"context"
	"log/slog"
	"net/http"

	"watchmate/internal/microservices/http-api/middleware"
	"watchmate/internal/microservices/http-api/service"
	"watchmate/internal/throttle"

	"github.com/gin-gonic/gin"
)

// Throttle scope names, matching the keys of config.ThrottleRates.
const (
	ScopeAnon         = "anon"
	ScopeReviewCreate = "review-create"
	ScopeReviewList   = "review-list"
	ScopeReviewDetail = "review-detail"
)

// access is the permission policy of an endpoint.
type access int

const (
	// accessPublic lets anyone through.
	accessPublic access = iota
	// accessAuthenticated requires a valid token.
	accessAuthenticated
	// accessAdminWrite lets anyone read and only admins write.
	accessAdminWrite
	// accessOwnerWrite lets anyone read and users write; ownership is
	// enforced by the service.
	accessOwnerWrite
)

type endpoint struct {
	method string
	path   string
	access access
	scopes []string
	handle gin.HandlerFunc
}

// Deps are the collaborators the router is built from.
type Deps struct {
	Auth       service.AuthService
	Platforms  service.PlatformService
	WatchLists service.WatchListService
	Reviews    service.ReviewService
	Limiter    throttle.Limiter
	Rates      map[string]throttle.Rate
	Logger     *slog.Logger
	// Ping reports backing store health for /healthz; nil means always healthy.
	Ping func(ctx context.Context) error
}

func endpoints(d Deps) []endpoint {
	auth := NewAuthHandler(d.Auth, d.Logger)
	platforms := NewPlatformHandler(d.Platforms, d.Logger)
	watchLists := NewWatchListHandler(d.WatchLists, d.Logger)
	reviews := NewReviewHandler(d.Reviews, d.Logger)

	anon := []string{ScopeAnon}

	routes := []endpoint{
		{http.MethodGet, "/stream/", accessAdminWrite, anon, platforms.List},
		{http.MethodPost, "/stream/", accessAdminWrite, anon, platforms.Create},
		{http.MethodGet, "/stream/:pk/", accessAdminWrite, anon, platforms.Get},
		{http.MethodPut, "/stream/:pk/", accessAdminWrite, anon, platforms.Update},
		{http.MethodDelete, "/stream/:pk/", accessAdminWrite, anon, platforms.Delete},

		{http.MethodGet, "/watch/", accessAdminWrite, anon, watchLists.List},
		{http.MethodPost, "/watch/", accessAdminWrite, anon, watchLists.Create},
		{http.MethodGet, "/watch/:pk/", accessAdminWrite, anon, watchLists.Get},
		{http.MethodPut, "/watch/:pk/", accessAdminWrite, anon, watchLists.Update},
		{http.MethodDelete, "/watch/:pk/", accessAdminWrite, anon, watchLists.Delete},

		{http.MethodGet, "/watch/:pk/reviews/", accessPublic, []string{ScopeReviewList, ScopeAnon}, reviews.ListForTitle},
		{http.MethodPost, "/watch/:pk/review-create/", accessAuthenticated, []string{ScopeReviewCreate}, reviews.Create},

		{http.MethodGet, "/review/:pk/", accessOwnerWrite, []string{ScopeReviewDetail, ScopeAnon}, reviews.Get},
		{http.MethodPut, "/review/:pk/", accessOwnerWrite, []string{ScopeReviewDetail, ScopeAnon}, reviews.Update},
		{http.MethodDelete, "/review/:pk/", accessOwnerWrite, []string{ScopeReviewDetail, ScopeAnon}, reviews.Delete},

		{http.MethodGet, "/reviews/", accessPublic, nil, reviews.ListForUser},
	}

	// account routes live under /account/ and at the root
	for _, prefix := range []string{"/account", ""} {
		routes = append(routes,
			endpoint{http.MethodPost, prefix + "/register/", accessPublic, nil, auth.Register},
			endpoint{http.MethodPost, prefix + "/login/", accessPublic, nil, auth.Login},
			endpoint{http.MethodPost, prefix + "/logout/", accessPublic, nil, auth.Logout},
		)
	}
	return routes
}

// NewRouter builds the gin engine serving the API.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))

	r.GET("/healthz", healthz(d.Ping))

	authenticate := middleware.Authenticate(d.Auth, d.Logger)
	for _, ep := range endpoints(d) {
		chain := []gin.HandlerFunc{}
		// logout reads the header itself so a stale token still gets a 200
		if ep.path != "/logout/" && ep.path != "/account/logout/" {
			chain = append(chain, authenticate)
		}
		if guard := accessGuard(ep.access); guard != nil {
			chain = append(chain, guard)
		}
		if d.Limiter != nil && len(ep.scopes) > 0 {
			chain = append(chain, middleware.Throttle(d.Limiter, d.Logger, throttleScopes(d.Rates, ep.scopes)...))
		}
		chain = append(chain, ep.handle)
		r.Handle(ep.method, ep.path, chain...)
	}
	return r
}

func accessGuard(a access) gin.HandlerFunc {
	switch a {
	case accessAuthenticated:
		return middleware.RequireAuth()
	case accessAdminWrite:
		return middleware.AdminOrReadOnly()
	case accessOwnerWrite:
		return middleware.AuthenticatedWriteOrReadOnly()
	}
	return nil
}

func throttleScopes(rates map[string]throttle.Rate, names []string) []middleware.ThrottleScope {
	scopes := make([]middleware.ThrottleScope, 0, len(names))
	for _, name := range names {
		rate, ok := rates[name]
		if !ok {
			continue
		}
		scopes = append(scopes, middleware.ThrottleScope{
			Name:     name,
			Rate:     rate,
			AnonOnly: name == ScopeAnon,
		})
	}
	return scopes
}

func healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
