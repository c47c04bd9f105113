// Package router assembles the gin engine of the storefront bridge.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/bridge/internal/infrastructure/config"
	"github.com/storefront/bridge/internal/infrastructure/logger"
	"github.com/storefront/bridge/internal/infrastructure/session"
	"github.com/storefront/bridge/internal/interfaces/http/handler"
	"github.com/storefront/bridge/internal/interfaces/http/middleware"
)

// Deps carries everything the router wires into the engine.
type Deps struct {
	Config       *config.Config
	Logger       *zap.Logger
	SessionStore session.Store
	CookieCodec  *session.CookieCodec
	GraphQL      *handler.GraphQLHandler
	System       *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain. The GraphQL
// endpoint is the only shopper-facing route; everything else is operational.
func New(d Deps) *gin.Engine {
	if d.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(d.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(d.Config.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = d.Config.HTTP.CORSAllowOrigins
	if len(d.Config.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = d.Config.HTTP.CORSAllowMethods
	}
	if len(d.Config.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = d.Config.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: d.Config.Telemetry.ServiceName,
			Enabled:     d.Config.Telemetry.Enabled,
		}),
		logger.GinMiddleware(d.Logger),
		logger.Recovery(d.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(d.Config.HTTP.MaxBodySize),
	)

	engine.GET("/healthz", d.System.Health)
	engine.GET("/readyz", d.System.Ready)

	shopper := middleware.Shopper(d.SessionStore, d.CookieCodec, middleware.CookieOptions{
		Domain:   d.Config.Session.CookieDomain,
		Path:     d.Config.Session.CookiePath,
		Secure:   d.Config.Session.CookieSecure,
		SameSite: d.Config.Session.CookieSameSite,
		TTL:      d.Config.Session.TTL,
	}, d.Logger)

	engine.POST("/graphql", shopper, d.GraphQL.Execute)

	return engine
}
