// Package seed creates the bootstrap admin broker.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/config"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

const minPasswordLen = 8

// Admin inserts the admin broker described by cfg. It is idempotent: when the
// email is already registered the existing row is left untouched and
// created is false.
func Admin(ctx context.Context, brokers repository.BrokersRepository, cfg config.SeedConfig) (b *model.Broker, created bool, err error) {
	email := util.NormalizeEmail(cfg.AdminEmail)
	if email == "" {
		return nil, false, errors.New("seed.admin_email is required")
	}

	existing, err := brokers.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if len(cfg.AdminPassword) < minPasswordLen {
		return nil, false, fmt.Errorf("seed.admin_password must be at least %d characters", minPasswordLen)
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	var company *string
	if c := strings.TrimSpace(cfg.AdminCompany); c != "" {
		company = &c
	}

	b, err = brokers.Create(ctx, &model.Broker{
		Name:         strings.TrimSpace(cfg.AdminName),
		Email:        email,
		PasswordHash: hash,
		CompanyName:  company,
		IsAdmin:      true,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		// lost a race with another seeder
		existing, gerr := brokers.GetByEmail(ctx, email)
		return existing, false, gerr
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}
