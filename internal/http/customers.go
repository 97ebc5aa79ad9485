package http

import (
	"net/http"
	"strconv"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/middleware"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/http/request"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/service/customers"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func listMyCustomersHandler(svc *customers.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		brokerID, _ := middleware.BrokerIDFromCtx(c)
		list, err := svc.ListByBroker(c.Request().Context(), brokerID)
		if err != nil {
			return writeError(c, lg, err, "Failed to fetch customers")
		}
		return c.JSON(http.StatusOK, list)
	}
}

func createCustomerHandler(svc *customers.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request.CreateCustomer
		if err := request.Decode(c, &req); err != nil {
			return badRequest(c, err)
		}

		typ, ok := model.ParseCustomerType(req.Type)
		if !ok {
			return c.JSON(http.StatusBadRequest, messageBody{request.MsgInvalidCustomerType})
		}

		brokerID, _ := middleware.BrokerIDFromCtx(c)
		cu, err := svc.Create(c.Request().Context(), brokerID, customers.CreateInput{
			Name:  req.Name,
			Email: req.Email,
			GSTIN: req.GSTIN,
			Type:  typ,
		})
		if err != nil {
			return writeError(c, lg, err, "Failed to create customer")
		}
		return c.JSON(http.StatusCreated, cu)
	}
}

// updateCustomerStatusHandler validates the status before touching the store,
// so a bad value is a 400 whether or not the customer exists.
func updateCustomerStatusHandler(svc *customers.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req request.UpdateCustomerStatus
		if err := request.Decode(c, &req); err != nil {
			return badRequest(c, err)
		}
		status, ok := model.ParseCustomerStatus(req.Status)
		if !ok {
			return c.JSON(http.StatusBadRequest, messageBody{customers.MsgInvalidStatus})
		}

		actorID, _ := middleware.BrokerIDFromCtx(c)
		cu, err := svc.UpdateStatus(c.Request().Context(), actorID, c.Param("id"), status)
		if err != nil {
			return writeError(c, lg, err, "Failed to update customer status")
		}
		return c.JSON(http.StatusOK, cu)
	}
}

func listCustomerEventsHandler(svc *customers.Service, lg *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := repository.DefaultEventsLimit
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = min(n, repository.MaxEventsLimit)
			}
		}

		actorID, _ := middleware.BrokerIDFromCtx(c)
		evs, err := svc.Events(c.Request().Context(), actorID, c.Param("id"), limit)
		if err != nil {
			return writeError(c, lg, err, "Failed to fetch customer events")
		}
		return c.JSON(http.StatusOK, evs)
	}
}
