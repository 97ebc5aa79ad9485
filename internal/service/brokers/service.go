package brokers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/apperr"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/util"
)

const (
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgBrokerNotFound     = "Broker not found"
)

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	CompanyName *string
}

// Service owns broker accounts: registration, credential checks and lookup.
type Service struct {
	repo repository.BrokersRepository
}

func New(repo repository.BrokersRepository) *Service {
	return &Service{repo: repo}
}

// Register creates a non-admin broker. A duplicate email, whether caught by
// the lookup or by the unique index, is a Conflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*model.Broker, error) {
	email := util.NormalizeEmail(in.Email)

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict(MsgEmailTaken)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	b, err := s.repo.Create(ctx, &model.Broker{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		CompanyName:  companyName(in.CompanyName),
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, apperr.Wrap(apperr.KindConflict, MsgEmailTaken, err)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Broker, error) {
	b, err := s.repo.GetByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	hash := ""
	if b != nil {
		hash = b.PasswordHash
	}
	if !auth.CheckPassword(hash, password) {
		return nil, apperr.Unauthorized(MsgInvalidCredentials)
	}
	return b, nil
}

// Get resolves the broker behind a session. A session whose broker no longer
// exists is treated as unauthenticated.
func (s *Service) Get(ctx context.Context, id string) (*model.Broker, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.Unauthorized(MsgBrokerNotFound)
	}
	return b, nil
}

func companyName(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
