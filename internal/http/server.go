package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/middleware"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/admin"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/brokers"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/customers"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the stores the server is built on. Redis may be nil, which
// disables the auth rate limit.
type Deps struct {
	Brokers   repository.BrokersRepository
	Customers repository.CustomersRepository
	Stats     repository.StatsRepository
	Events    repository.CHEventsRepository
	Sessions  auth.SessionStore
	Redis     *redis.Client
	Logger    *zap.Logger
}

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

func NewServer(cfg config.Config, d Deps) *Server {
	lg := d.Logger
	if lg == nil {
		lg = zap.NewNop()
	}

	// services
	brokerSvc := brokers.New(d.Brokers)
	customerSvc := customers.New(d.Customers, d.Brokers, d.Events)
	adminSvc := admin.New(d.Stats, d.Brokers, d.Customers)
	sessions := auth.NewManager(d.Sessions, cfg.Session)

	// echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.ERROR)
	e.Use(
		echoMid.Recover(),
		echoMid.RequestID(),
		middleware.Metrics(),
		requestLogger(lg),
		echoMid.BodyLimit("1M"),
	)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	sessionMW := middleware.LoadSession(sessions, lg)
	authMW := middleware.RequireAuth()
	adminMW := middleware.RequireAdmin(d.Brokers, lg)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          d.Redis,
		Limit:          cfg.RateLimit.AuthPerMinute,
		KeyPrefix:      "rl:auth:",
		Window:         time.Minute,
		RetryAfterHint: true,
	})

	// routes
	api := e.Group("/api", sessionMW)

	authG := api.Group("/auth")
	authG.POST("/register", registerHandler(brokerSvc, sessions, lg), rlMW)
	authG.POST("/login", loginHandler(brokerSvc, sessions, lg), rlMW)
	authG.POST("/logout", logoutHandler(sessions, lg))
	authG.GET("/me", meHandler(brokerSvc, lg), authMW)

	custG := api.Group("/customers", authMW)
	custG.GET("", listMyCustomersHandler(customerSvc, lg))
	custG.POST("", createCustomerHandler(customerSvc, lg))
	custG.PATCH("/:id/status", updateCustomerStatusHandler(customerSvc, lg))
	custG.GET("/:id/events", listCustomerEventsHandler(customerSvc, lg))

	adminG := api.Group("/admin", adminMW)
	adminG.GET("/stats", adminStatsHandler(adminSvc, lg))
	adminG.GET("/brokers", adminBrokersHandler(adminSvc, lg))
	adminG.GET("/customers", adminCustomersHandler(adminSvc, lg))

	return &Server{e: e, log: lg}
}

// requestLogger writes one zap line per request. Cookies and bodies are never logged.
func requestLogger(lg *zap.Logger) echo.MiddlewareFunc {
	return echoMid.RequestLoggerWithConfig(echoMid.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echoMid.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil {
				lg.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			lg.Info("request", fields...)
			return nil
		},
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
