package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cholospace/mission-control/docs"
	"github.com/cholospace/mission-control/internal/api/handler"
	"github.com/cholospace/mission-control/internal/api/middleware"
	"github.com/cholospace/mission-control/internal/core/policy"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// defaultBodyLimit caps JSON and multipart bodies when Deps.BodyLimit is
// unset. Avatar size is enforced separately by the avatar service.
const defaultBodyLimit = "4MiB"

// Deps carries everything the router needs. Services are built by the caller.
type Deps struct {
	Auth      ports.AuthService
	Logs      ports.LogService
	Broadcast ports.BroadcastService
	Avatars   ports.AvatarService
	Verifier  middleware.TokenVerifier
	Logger    zerolog.Logger

	// ReadinessChecks are run by /health/ready, keyed by dependency name.
	ReadinessChecks map[string]func(ctx context.Context) error
	// UploadDir is served under /uploads when avatars are stored locally.
	UploadDir string
	// MetricsRegisterer enables HTTP request metrics when non-nil.
	MetricsRegisterer prometheus.Registerer
	// BodyLimit overrides defaultBodyLimit, e.g. "8MiB" or a plain byte count.
	BodyLimit string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	bodyLimit := d.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	if d.MetricsRegisterer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "mission_control",
			Registerer: d.MetricsRegisterer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	logHandler := handler.NewLogHandler(d.Logs)
	broadcastHandler := handler.NewBroadcastHandler(d.Broadcast)
	avatarHandler := handler.NewAvatarHandler(d.Avatars)
	healthHandler := handler.NewHealthHandler(d.ReadinessChecks)

	auth := middleware.Auth(d.Verifier)

	// --- Identity ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout, auth)

	// --- Mission logs ---
	// Ownership rules need the stored entry, so the ledger enforces them.
	e.POST("/save-log", logHandler.Save, auth)
	e.POST("/share-log/:id", logHandler.Share, auth)
	e.DELETE("/delete-log/:id", logHandler.Delete, auth)
	e.GET("/public-logs", logHandler.PublicLogs, middleware.Guard(policy.ReadPublicLog))
	e.GET("/get-data/:username", logHandler.GetData, auth)
	e.POST("/upload-avatar", avatarHandler.Upload, auth)

	// --- Broadcast ---
	e.GET("/api/alert", broadcastHandler.Get, middleware.Guard(policy.ReadBroadcast))

	// --- Admin ---
	admin := e.Group("/admin", auth)
	admin.POST("/broadcast", broadcastHandler.Set, middleware.Guard(policy.WriteBroadcast))
	admin.GET("/master-feed", logHandler.MasterFeed, middleware.Guard(policy.ReadMasterFeed))

	// --- Static avatars (local storage only) ---
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
