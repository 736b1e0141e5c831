package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"atm-terminal/internal/domain"
	"atm-terminal/internal/repository"
)

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	account_num INTEGER PRIMARY KEY AUTOINCREMENT,
	holder TEXT NOT NULL DEFAULT '',
	balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
	status TEXT NOT NULL DEFAULT 'Active',
	login TEXT NOT NULL UNIQUE,
	pin TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'Customer',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const selectAccountColumns = `SELECT account_num, holder, balance, status, login, pin, role FROM accounts`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ repository.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAccountsTable); err != nil {
		return repository.WrapStore("create accounts table", err)
	}
	return nil
}

// EnsureAdministrator inserts an administrator row with the given credentials
// unless one already exists. It reports whether a row was created.
func (r *AccountRepository) EnsureAdministrator(ctx context.Context, login, pin string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE role = ?`, string(domain.RoleAdministrator),
	).Scan(&count); err != nil {
		return false, repository.WrapStore("count administrators", err)
	}
	if count > 0 {
		return false, nil
	}

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (holder, balance, status, login, pin, role, created_at, updated_at)
VALUES ('', 0, ?, ?, ?, ?, ?, ?)`,
		string(domain.AccountStatusActive),
		login,
		pin,
		string(domain.RoleAdministrator),
		now,
		now,
	); err != nil {
		return false, repository.WrapStore("insert administrator", err)
	}
	return true, nil
}

func (r *AccountRepository) FindUserByCredentials(ctx context.Context, login, pin string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectAccountColumns+`
WHERE login = ? AND pin = ?`,
		login,
		pin,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, repository.WrapStore(fmt.Sprintf("find user with login %q", login), err)
	}
	return user, nil
}

func (r *AccountRepository) FindUserByAccountID(ctx context.Context, accountID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectAccountColumns+`
WHERE account_num = ?`,
		accountID,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, repository.WrapStore(fmt.Sprintf("find user with account number %d", accountID), err)
	}
	return user, nil
}

func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccountColumns+`
WHERE account_num = ? AND role = ?`,
		accountID,
		string(domain.RoleCustomer),
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, repository.WrapStore(fmt.Sprintf("find account %d", accountID), err)
	}
	if user == nil {
		return nil, nil
	}
	return user.Account, nil
}

func (r *AccountRepository) PersistBalance(ctx context.Context, accountID, balance int64) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE accounts
SET balance = ?, updated_at = ?
WHERE account_num = ?`,
		balance,
		time.Now().UTC(),
		accountID,
	)
	return repository.WrapStore("update account balance", err)
}

func (r *AccountRepository) InsertAccount(ctx context.Context, rec repository.AccountRecord) (repository.InsertOutcome, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (holder, balance, status, login, pin, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Holder,
		rec.Balance,
		string(rec.Status),
		rec.Login,
		rec.Pin,
		string(domain.RoleCustomer),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.InsertOutcome{Status: repository.InsertDuplicate}, nil
		}
		return repository.InsertOutcome{}, repository.WrapStore("create account", err)
	}

	id, err := res.LastInsertId()
	if err != nil || id <= 0 {
		return repository.InsertOutcome{Status: repository.InsertFailed}, nil
	}
	return repository.InsertOutcome{Status: repository.InsertCreated, ID: id}, nil
}

func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	_, err := r.db.ExecContext(ctx, `
DELETE FROM accounts
WHERE account_num = ? AND role = ?`,
		accountID,
		string(domain.RoleCustomer),
	)
	return repository.WrapStore("delete account", err)
}

// PatchAccount writes the non-empty fields of patch and returns the number of rows changed.
// A patch with no fields touches nothing and reports zero rows.
func (r *AccountRepository) PatchAccount(ctx context.Context, accountID int64, patch repository.AccountPatch) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}

	var (
		sets []string
		args []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	add("holder", patch.Holder)
	add("status", patch.Status)
	add("login", patch.Login)
	add("pin", patch.Pin)

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), accountID, string(domain.RoleCustomer))

	query := fmt.Sprintf(`
UPDATE accounts
SET %s
WHERE account_num = ? AND role = ?`, strings.Join(sets, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, repository.WrapStore("update account info", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, repository.WrapStore("update account info rows", err)
	}
	return rows, nil
}

// scanUser returns (nil, nil) when the row does not exist.
func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		id      int64
		holder  string
		balance int64
		status  string
		login   string
		pin     string
		role    string
	)
	if err := row.Scan(&id, &holder, &balance, &status, &login, &pin, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	switch domain.Role(role) {
	case domain.RoleCustomer:
		account := domain.NewAccount(id, holder, balance, domain.AccountStatus(status))
		return domain.NewCustomer(login, pin, account), nil
	case domain.RoleAdministrator:
		return domain.NewAdministrator(login, pin), nil
	}
	return nil, fmt.Errorf("account %d has unknown role %q", id, role)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
