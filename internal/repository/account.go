package repository

import (
	"context"

	"atm-terminal/internal/domain"
)

// AccountRecord is the full set of columns supplied when inserting a customer account.
type AccountRecord struct {
	Login   string
	Pin     string
	Holder  string
	Balance int64
	Status  domain.AccountStatus
}

// AccountPatch names replacement values for an account. Empty fields are not written.
type AccountPatch struct {
	Holder string
	Status string
	Login  string
	Pin    string
}

func (p AccountPatch) Empty() bool {
	return p.Holder == "" && p.Status == "" && p.Login == "" && p.Pin == ""
}

// InsertStatus is the closed set of outcomes of an account insert.
type InsertStatus int

const (
	InsertCreated InsertStatus = iota + 1
	InsertDuplicate
	InsertFailed
)

func (s InsertStatus) String() string {
	switch s {
	case InsertCreated:
		return "created"
	case InsertDuplicate:
		return "duplicate"
	case InsertFailed:
		return "failed"
	}
	return "unknown"
}

// InsertOutcome reports an insert. ID is set only for InsertCreated.
type InsertOutcome struct {
	Status InsertStatus
	ID     int64
}

// AccountRepository exposes persistence for accounts and the users that own them.
// Lookups return (nil, nil) when nothing matches; every non-nil error is a *StoreError.
type AccountRepository interface {
	Init(ctx context.Context) error
	FindUserByCredentials(ctx context.Context, login, pin string) (*domain.User, error)
	FindUserByAccountID(ctx context.Context, accountID int64) (*domain.User, error)
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	PersistBalance(ctx context.Context, accountID, balance int64) error
	InsertAccount(ctx context.Context, rec AccountRecord) (InsertOutcome, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	PatchAccount(ctx context.Context, accountID int64, patch AccountPatch) (int64, error)
}
