package http

import (
	"net/http"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/admin"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func adminStatsHandler(svc *admin.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		st, err := svc.Stats(c.Request().Context())
		if err != nil {
			return writeError(c, lg, err, "Failed to fetch stats")
		}
		return c.JSON(http.StatusOK, st)
	}
}

func adminBrokersHandler(svc *admin.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.Brokers(c.Request().Context())
		if err != nil {
			return writeError(c, lg, err, "Failed to fetch brokers")
		}
		return c.JSON(http.StatusOK, list)
	}
}

func adminCustomersHandler(svc *admin.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.Customers(c.Request().Context())
		if err != nil {
			return writeError(c, lg, err, "Failed to fetch customers")
		}
		return c.JSON(http.StatusOK, list)
	}
}
