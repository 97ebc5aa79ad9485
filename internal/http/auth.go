package http

import (
	"net/http"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/apperr"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/middleware"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/request"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/brokers"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// brokerBody wraps a broker for auth responses. model.Broker never
// serialises its password hash.
type brokerBody struct {
	Broker *model.Broker `json:"broker"`
}

func recordAuth(action string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case apperr.KindOf(err) == apperr.KindInternal:
		outcome = "error"
	default:
		outcome = "rejected"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(action, outcome).Inc()
}

func registerHandler(svc *brokers.Service, sessions *auth.Manager, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request.Register
		if err := request.Decode(c, &req); err != nil {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
			return badRequest(c, err)
		}

		b, err := svc.Register(c.Request().Context(), brokers.RegisterInput{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			CompanyName: req.CompanyName,
		})
		recordAuth("register", err)
		if err != nil {
			return writeError(c, lg, err, "Registration failed")
		}

		ck, err := sessions.Start(c.Request().Context(), b.ID)
		if err != nil {
			return writeError(c, lg, err, "Registration failed")
		}
		c.SetCookie(ck)

		return c.JSON(http.StatusCreated, brokerBody{b})
	}
}

func loginHandler(svc *brokers.Service, sessions *auth.Manager, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request.Login
		if err := request.Decode(c, &req); err != nil {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
			return badRequest(c, err)
		}

		b, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		recordAuth("login", err)
		if err != nil {
			return writeError(c, lg, err, "Login failed")
		}

		// drop any session the client already had
		if sid, ok := middleware.SessionIDFromCtx(c); ok {
			if _, err := sessions.End(c.Request().Context(), sid); err != nil {
				lg.Warn("drop previous session", zap.Error(err))
			}
		}

		ck, err := sessions.Start(c.Request().Context(), b.ID)
		if err != nil {
			return writeError(c, lg, err, "Login failed")
		}
		c.SetCookie(ck)

		return c.JSON(http.StatusOK, brokerBody{b})
	}
}

// logoutHandler succeeds for anonymous callers too; it always clears the cookie.
func logoutHandler(sessions *auth.Manager, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		sid, _ := middleware.SessionIDFromCtx(c)
		ck, err := sessions.End(c.Request().Context(), sid)
		if err != nil {
			return writeError(c, lg, err, "Logout failed")
		}
		c.SetCookie(ck)
		return c.JSON(http.StatusOK, messageBody{"Logged out successfully"})
	}
}

func meHandler(svc *brokers.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, _ := middleware.BrokerIDFromCtx(c)
		b, err := svc.Get(c.Request().Context(), id)
		if err != nil {
			return writeError(c, lg, err, "Auth check failed")
		}
		return c.JSON(http.StatusOK, brokerBody{b})
	}
}
