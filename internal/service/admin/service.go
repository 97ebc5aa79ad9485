package admin

import (
	"context"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
)

// Service serves the cross-tenant admin views. Callers must have passed the
// admin guard.
type Service struct {
	stats     repository.StatsRepository
	brokers   repository.BrokersRepository
	customers repository.CustomersRepository
}

func New(stats repository.StatsRepository, brokers repository.BrokersRepository, customers repository.CustomersRepository) *Service {
	return &Service{stats: stats, brokers: brokers, customers: customers}
}

func (s *Service) Stats(ctx context.Context) (model.Stats, error) {
	return s.stats.Stats(ctx)
}

func (s *Service) Brokers(ctx context.Context) ([]model.BrokerWithCount, error) {
	return s.brokers.ListWithCustomerCount(ctx)
}

func (s *Service) Customers(ctx context.Context) ([]model.Customer, error) {
	return s.customers.ListAll(ctx)
}
