package http

import (
	"errors"
	"net/http"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/apperr"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/request"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// messageBody is the shape of every error (and the logout) response.
type messageBody struct {
	Message string `json:"message"`
}

func badRequest(c echo.Context, err error) error {
	msg := request.MsgInvalidBody
	var fe request.FieldErrors
	if errors.As(err, &fe) && len(fe) > 0 {
		msg = fe[0].Message
	}
	return c.JSON(http.StatusBadRequest, messageBody{msg})
}

// writeError maps a service error onto its status. Unclassified errors are
// logged and answered with the route's generic message.
func writeError(c echo.Context, lg *zap.Logger, err error, fallback string) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		lg.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("route", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		)
	}
	return c.JSON(kind.Status(), messageBody{apperr.Message(err, fallback)})
}
