// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"time"

	"fintrack/config"
	"fintrack/internal/delivery/http/middleware"
	"fintrack/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

const rateLimiterExpiry = 3 * time.Minute

type RouterParams struct {
	fx.In

	Config          *config.Config
	IdentityHandler *handler.IdentityHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg             *config.Config
	identityHandler *handler.IdentityHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:             params.Config,
		identityHandler: params.IdentityHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/api/users")

	// Credential endpoints, throttled per client IP when configured
	var credentialMiddleware []echo.MiddlewareFunc
	if limiter := r.credentialRateLimiter(); limiter != nil {
		credentialMiddleware = append(credentialMiddleware, limiter)
	}
	userGroup.POST("/signup", r.identityHandler.Register, credentialMiddleware...)
	userGroup.POST("/login", r.identityHandler.Login, credentialMiddleware...)

	// Routes that require a bearer token
	userGroup.GET("/me", r.identityHandler.GetCurrentIdentity, r.authMiddleware.Authenticate)
}

func (r *router) credentialRateLimiter() echo.MiddlewareFunc {
	if r.cfg == nil || r.cfg.HTTP.RateLimit.RequestsPerSecond <= 0 {
		return nil
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(r.cfg.HTTP.RateLimit.RequestsPerSecond),
		Burst:     r.cfg.HTTP.RateLimit.Burst,
		ExpiresIn: rateLimiterExpiry,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}
