package domain

import "fmt"

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "Active"
	AccountStatusDisabled AccountStatus = "Disabled"
)

// StatusFromActive maps the active flag collected at creation time to a stored status.
func StatusFromActive(active bool) AccountStatus {
	if active {
		return AccountStatusActive
	}
	return AccountStatusDisabled
}

// Account is the balance-bearing record owned by exactly one customer.
// Balances are whole currency units and never go negative.
type Account struct {
	ID         int64
	HolderName string
	Balance    int64
	Status     AccountStatus
}

func NewAccount(id int64, holder string, balance int64, status AccountStatus) *Account {
	return &Account{
		ID:         id,
		HolderName: holder,
		Balance:    balance,
		Status:     status,
	}
}

// Deposit adds amount to the balance. Non-positive amounts are ignored.
func (a *Account) Deposit(amount int64) {
	if amount <= 0 {
		return
	}
	a.Balance += amount
}

// Withdraw removes amount from the balance when 0 < amount <= balance and
// reports whether it did. The balance is untouched otherwise.
func (a *Account) Withdraw(amount int64) bool {
	if amount <= 0 || amount > a.Balance {
		return false
	}
	a.Balance -= amount
	return true
}

func (a *Account) String() string {
	return fmt.Sprintf("account #%d (%s, %s)", a.ID, a.HolderName, a.Status)
}
