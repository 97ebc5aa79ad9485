package customers

import (
	"context"
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/apperr"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/metrics"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

const (
	MsgCustomerNotFound = "Customer not found"
	MsgForbidden        = "Forbidden"
	MsgInvalidStatus    = "Invalid status"
)

type CreateInput struct {
	Name  string
	Email string
	GSTIN string
	Type  model.CustomerType
}

// Service applies ownership rules on top of the customer store: a broker
// sees and mutates only its own customers, admins may act on any.
type Service struct {
	customers repository.CustomersRepository
	brokers   repository.BrokersRepository
	events    repository.CHEventsRepository
}

func New(
	customers repository.CustomersRepository,
	brokers repository.BrokersRepository,
	events repository.CHEventsRepository,
) *Service {
	return &Service{customers: customers, brokers: brokers, events: events}
}

func (s *Service) ListByBroker(ctx context.Context, brokerID string) ([]model.Customer, error) {
	return s.customers.ListByBroker(ctx, brokerID)
}

// Create registers a customer owned by brokerID. Status always starts pending.
func (s *Service) Create(ctx context.Context, brokerID string, in CreateInput) (*model.Customer, error) {
	c, err := s.customers.Create(ctx, &model.Customer{
		Name:     strings.TrimSpace(in.Name),
		Email:    util.NormalizeEmail(in.Email),
		GSTIN:    in.GSTIN,
		Type:     in.Type,
		BrokerID: brokerID,
	}, brokerID)
	if err != nil {
		return nil, err
	}
	metrics.CustomerEventsTotal.WithLabelValues(string(model.EventCustomerCreated)).Inc()
	return c, nil
}

func (s *Service) UpdateStatus(ctx context.Context, actorID, customerID string, status model.CustomerStatus) (*model.Customer, error) {
	if !status.Valid() {
		return nil, apperr.Validation(MsgInvalidStatus)
	}

	c, err := s.authorized(ctx, actorID, customerID)
	if err != nil {
		return nil, err
	}

	updated, err := s.customers.UpdateStatus(ctx, c.ID, status, actorID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound(MsgCustomerNotFound)
	}
	if c.Status != status {
		metrics.CustomerEventsTotal.WithLabelValues(string(model.EventCustomerStatusChanged)).Inc()
	}
	return updated, nil
}

// Events returns the customer's lifecycle history, newest first.
func (s *Service) Events(ctx context.Context, actorID, customerID string, limit int) ([]model.CustomerEvent, error) {
	c, err := s.authorized(ctx, actorID, customerID)
	if err != nil {
		return nil, err
	}
	return s.events.ListByCustomer(ctx, c.ID, limit)
}

// authorized loads the customer and checks that actorID owns it or is an admin.
func (s *Service) authorized(ctx context.Context, actorID, customerID string) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound(MsgCustomerNotFound)
	}
	if c.BrokerID == actorID {
		return c, nil
	}

	actor, err := s.brokers.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil || !actor.IsAdmin {
		return nil, apperr.Forbidden(MsgForbidden)
	}
	return c, nil
}
