package middleware

import (
	"context"
	"net/http"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	echo "github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	ctxBrokerID  = "broker_id"
	ctxSessionID = "session_id"
)

type errorBody struct {
	Message string `json:"message"`
}

// BrokerIDFromCtx extracts the authenticated broker id set by LoadSession.
func BrokerIDFromCtx(c echo.Context) (string, bool) {
	id, ok := c.Get(ctxBrokerID).(string)
	return id, ok && id != ""
}

// SessionIDFromCtx returns the server-side session id behind the cookie.
func SessionIDFromCtx(c echo.Context) (string, bool) {
	id, ok := c.Get(ctxSessionID).(string)
	return id, ok && id != ""
}

// LoadSession resolves the session cookie, if any, and stores the broker id
// in the echo context and the request context. It never rejects a request;
// a missing or invalid cookie simply leaves the request anonymous.
func LoadSession(sessions *auth.Manager, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(sessions.CookieName())
			if err != nil || ck.Value == "" {
				return next(c)
			}

			sid, brokerID, err := sessions.Resolve(c.Request().Context(), ck.Value)
			if err != nil {
				if !auth.IsNotFound(err) {
					log.Warn("session lookup failed", zap.Error(err))
				}
				return next(c)
			}

			c.Set(ctxSessionID, sid)
			c.Set(ctxBrokerID, brokerID)
			c.SetRequest(c.Request().WithContext(auth.WithBrokerID(c.Request().Context(), brokerID)))
			return next(c)
		}
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := BrokerIDFromCtx(c); !ok {
				return c.JSON(http.StatusUnauthorized, errorBody{"Unauthorized"})
			}
			return next(c)
		}
	}
}

// BrokerGetter is the lookup RequireAdmin needs.
type BrokerGetter interface {
	GetByID(ctx context.Context, id string) (*model.Broker, error)
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
// It re-reads the broker on every request so revoked admin rights apply at once.
func RequireAdmin(brokers BrokerGetter, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := BrokerIDFromCtx(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody{"Unauthorized"})
			}

			b, err := brokers.GetByID(c.Request().Context(), id)
			if err != nil {
				log.Error("admin check failed", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, errorBody{"Auth check failed"})
			}
			if b == nil || !b.IsAdmin {
				return c.JSON(http.StatusForbidden, errorBody{"Forbidden"})
			}
			return next(c)
		}
	}
}
