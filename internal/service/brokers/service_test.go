package brokers

import (
	"context"
	"errors"
	"testing"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/apperr"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/auth"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository"
	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRegister(t *testing.T) {
	store := repotest.New()
	svc := New(store.Brokers())

	b, err := svc.Register(context.Background(), RegisterInput{
		Name: " Jo Lee ", Email: " Jo@X.com", Password: "longenough", CompanyName: strPtr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Jo Lee", b.Name)
	assert.Equal(t, "jo@x.com", b.Email)
	assert.Nil(t, b.CompanyName)
	assert.False(t, b.IsAdmin)
	assert.NotEqual(t, "longenough", b.PasswordHash)
	assert.True(t, auth.CheckPassword(b.PasswordHash, "longenough"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := repotest.New()
	svc := New(store.Brokers())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Jo", Email: "jo@x.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Name: "Jo", Email: "JO@x.com ", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, MsgEmailTaken, apperr.Message(err, ""))
	assert.Equal(t, 1, store.BrokerCount())
}

// racingRepo hides the existing row from the pre-check, as a concurrent
// registration would.
type racingRepo struct {
	repository.BrokersRepository
}

func (racingRepo) GetByEmail(context.Context, string) (*model.Broker, error) { return nil, nil }

func TestRegister_UniqueIndexRace(t *testing.T) {
	store := repotest.New()
	store.AddBroker(model.Broker{Name: "Jo", Email: "jo@x.com"})
	svc := New(racingRepo{store.Brokers()})

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Jo", Email: "jo@x.com", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Equal(t, 1, store.BrokerCount())
}

func TestRegister_StoreError(t *testing.T) {
	store := repotest.New()
	store.SetErr(errors.New("db down"))

	_, err := New(store.Brokers()).Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	store := repotest.New()
	svc := New(store.Brokers())
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Jo", Email: "jo@x.com", Password: "longenough"})
	require.NoError(t, err)

	b, err := svc.Login(ctx, "JO@x.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "jo@x.com", b.Email)

	_, wrongPw := svc.Login(ctx, "jo@x.com", "not-the-password")
	_, noUser := svc.Login(ctx, "nobody@x.com", "longenough")
	for _, err := range []error{wrongPw, noUser} {
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.Equal(t, MsgInvalidCredentials, apperr.Message(err, ""))
	}
	assert.Equal(t, wrongPw.Error(), noUser.Error())
}

func TestGet(t *testing.T) {
	store := repotest.New()
	jo := store.AddBroker(model.Broker{Name: "Jo", Email: "jo@x.com"})
	svc := New(store.Brokers())

	b, err := svc.Get(context.Background(), jo.ID)
	require.NoError(t, err)
	assert.Equal(t, jo.ID, b.ID)

	_, err = svc.Get(context.Background(), "gone")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Equal(t, MsgBrokerNotFound, apperr.Message(err, ""))
}
