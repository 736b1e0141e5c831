package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atm-terminal/internal/domain"
	"atm-terminal/internal/repository"
)

type mockAccountRepository struct {
	mock.Mock
}

var _ repository.AccountRepository = (*mockAccountRepository)(nil)

func newMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *mockAccountRepository {
	m := &mockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockAccountRepository) Init(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAccountRepository) FindUserByCredentials(ctx context.Context, login, pin string) (*domain.User, error) {
	args := m.Called(ctx, login, pin)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockAccountRepository) FindUserByAccountID(ctx context.Context, accountID int64) (*domain.User, error) {
	args := m.Called(ctx, accountID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *mockAccountRepository) PersistBalance(ctx context.Context, accountID, balance int64) error {
	return m.Called(ctx, accountID, balance).Error(0)
}

func (m *mockAccountRepository) InsertAccount(ctx context.Context, rec repository.AccountRecord) (repository.InsertOutcome, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(repository.InsertOutcome), args.Error(1)
}

func (m *mockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *mockAccountRepository) PatchAccount(ctx context.Context, accountID int64, patch repository.AccountPatch) (int64, error) {
	args := m.Called(ctx, accountID, patch)
	return args.Get(0).(int64), args.Error(1)
}
