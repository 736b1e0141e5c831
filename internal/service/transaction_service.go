package service

import (
	"context"
	"fmt"

	"atm-terminal/internal/domain"
	"atm-terminal/internal/repository"
)

// TransactionService runs cash workflows against a customer's own account.
type TransactionService interface {
	Withdraw(ctx context.Context, customer *domain.User, amount int64) (domain.WithdrawalResult, error)
	Deposit(ctx context.Context, customer *domain.User, amount int64) (domain.DepositResult, error)
}

type transactionService struct {
	accounts repository.AccountRepository
}

func NewTransactionService(accounts repository.AccountRepository) TransactionService {
	return &transactionService{accounts: accounts}
}

func (s *transactionService) Withdraw(ctx context.Context, customer *domain.User, amount int64) (domain.WithdrawalResult, error) {
	account := ownedAccount(customer)
	if account == nil {
		return domain.WithdrawalResult{Status: domain.WithdrawalAccountNotFound, Amount: amount}, nil
	}

	previous := account.Balance
	if !account.Withdraw(amount) {
		return domain.WithdrawalResult{Status: domain.WithdrawalInsufficientFunds, Account: account, Amount: amount}, nil
	}

	if err := s.accounts.PersistBalance(ctx, account.ID, account.Balance); err != nil {
		account.Balance = previous
		return domain.WithdrawalResult{}, fmt.Errorf("withdraw from account %d: %w", account.ID, err)
	}
	return domain.WithdrawalResult{Status: domain.WithdrawalSuccess, Account: account, Amount: amount}, nil
}

func (s *transactionService) Deposit(ctx context.Context, customer *domain.User, amount int64) (domain.DepositResult, error) {
	account := ownedAccount(customer)
	if account == nil {
		return domain.DepositResult{Status: domain.DepositAccountNotFound, Amount: amount}, nil
	}

	previous := account.Balance
	account.Deposit(amount)

	if err := s.accounts.PersistBalance(ctx, account.ID, account.Balance); err != nil {
		account.Balance = previous
		return domain.DepositResult{}, fmt.Errorf("deposit to account %d: %w", account.ID, err)
	}
	return domain.DepositResult{Status: domain.DepositSuccess, Account: account, Amount: amount}, nil
}

func ownedAccount(customer *domain.User) *domain.Account {
	if !customer.IsCustomer() {
		return nil
	}
	return customer.Account
}
