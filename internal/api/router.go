package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/delivery-zones/docs"
	"github.com/99minutos/delivery-zones/internal/api/handler"
	"github.com/99minutos/delivery-zones/internal/api/middleware"
	"github.com/99minutos/delivery-zones/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log           zerolog.Logger
	JWTSecret     string
	DeliveryAreas ports.DeliveryAreaService
	Resolver      ports.AddressResolver
	// Location decides the default delivery day.
	Location  *time.Location
	Readiness []handler.Dependency
	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// Prometheus default registry, where the domain metrics live.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	// Metrics wrap Recover so recovered panics are counted as 500s.
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "delivery_zones",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
		StatusCodeResolver:        statusCode,
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Readiness...).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	v1 := e.Group("/v1")
	if d.JWTSecret != "" {
		v1.Use(middleware.Auth(d.JWTSecret))
	} else {
		d.Log.Warn().Msg("JWT_SECRET is empty, /v1 routes are unauthenticated")
	}

	areas := handler.NewDeliveryAreaHandler(d.DeliveryAreas, d.Location)
	v1.POST("/delivery-areas/verify", areas.Verify)
	v1.POST("/delivery-areas/search", areas.Search)

	addresses := handler.NewAddressHandler(d.Resolver)
	v1.POST("/address/verify", addresses.Verify)
	v1.GET("/address/autocomplete", addresses.Autocomplete)
	v1.GET("/address/places/:place_id", addresses.Place)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	log = log.With().Str("component", "http").Logger()
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Warn()
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
