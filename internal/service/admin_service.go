package service

import (
	"context"
	"fmt"

	"atm-terminal/internal/domain"
	"atm-terminal/internal/repository"
)

// AdminService covers the customer account lifecycle available to administrators.
type AdminService interface {
	GetAccountIfExists(ctx context.Context, accountID int64) (*domain.Account, error)
	CreateAccount(ctx context.Context, login, pin, holder string, startingBalance int64, active bool) (domain.CreationResult, error)
	DeleteAccount(ctx context.Context, accountID, confirmation int64) (domain.DeletionResult, error)
	UpdateAccount(ctx context.Context, accountID int64, newHolder, newStatus, newLogin, newPin string) (bool, error)
	SearchAccount(ctx context.Context, accountID int64) (*domain.AccountInfo, error)
}

type adminService struct {
	accounts repository.AccountRepository
}

func NewAdminService(accounts repository.AccountRepository) AdminService {
	return &adminService{accounts: accounts}
}

func (s *adminService) GetAccountIfExists(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accounts.FindAccountByID(ctx, accountID)
}

func (s *adminService) CreateAccount(ctx context.Context, login, pin, holder string, startingBalance int64, active bool) (domain.CreationResult, error) {
	out, err := s.accounts.InsertAccount(ctx, repository.AccountRecord{
		Login:   login,
		Pin:     pin,
		Holder:  holder,
		Balance: startingBalance,
		Status:  domain.StatusFromActive(active),
	})
	if err != nil {
		return domain.CreationResult{}, fmt.Errorf("create account for %q: %w", login, err)
	}

	switch out.Status {
	case repository.InsertCreated:
		return domain.CreationResult{Status: domain.CreationSuccess, AccountID: out.ID}, nil
	case repository.InsertDuplicate:
		return domain.CreationResult{Status: domain.CreationDuplicateAccount}, nil
	default:
		return domain.CreationResult{Status: domain.CreationError}, nil
	}
}

// DeleteAccount removes the account only when confirmation repeats accountID exactly.
func (s *adminService) DeleteAccount(ctx context.Context, accountID, confirmation int64) (domain.DeletionResult, error) {
	if confirmation != accountID {
		return domain.DeletionResult{Status: domain.DeletionConfirmationFailure, AccountID: accountID}, nil
	}
	if err := s.accounts.DeleteAccount(ctx, accountID); err != nil {
		return domain.DeletionResult{}, fmt.Errorf("delete account %d: %w", accountID, err)
	}
	return domain.DeletionResult{Status: domain.DeletionSuccess, AccountID: accountID}, nil
}

// UpdateAccount merges the new values over the stored ones, where an empty
// value keeps the stored field, and writes all four fields at once. It reports
// whether the write touched a row.
func (s *adminService) UpdateAccount(ctx context.Context, accountID int64, newHolder, newStatus, newLogin, newPin string) (bool, error) {
	current, err := s.accounts.FindUserByAccountID(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("load account %d for update: %w", accountID, err)
	}

	var patch repository.AccountPatch
	if current != nil {
		patch.Login = current.Login
		patch.Pin = current.Pin
		if current.Account != nil {
			patch.Holder = current.Account.HolderName
			patch.Status = string(current.Account.Status)
		}
	}
	patch.Holder = keepIfEmpty(newHolder, patch.Holder)
	patch.Status = keepIfEmpty(newStatus, patch.Status)
	patch.Login = keepIfEmpty(newLogin, patch.Login)
	patch.Pin = keepIfEmpty(newPin, patch.Pin)

	rows, err := s.accounts.PatchAccount(ctx, accountID, patch)
	if err != nil {
		return false, fmt.Errorf("update account %d: %w", accountID, err)
	}
	return rows > 0, nil
}

// SearchAccount returns nil when the account does not exist.
func (s *adminService) SearchAccount(ctx context.Context, accountID int64) (*domain.AccountInfo, error) {
	account, err := s.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("search account %d: %w", accountID, err)
	}
	if account == nil {
		return nil, nil
	}

	user, err := s.accounts.FindUserByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("search owner of account %d: %w", accountID, err)
	}
	if user == nil {
		return nil, nil
	}
	return &domain.AccountInfo{Account: account, User: user}, nil
}

func keepIfEmpty(value, current string) string {
	if value == "" {
		return current
	}
	return value
}
