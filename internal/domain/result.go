package domain

// WithdrawalStatus is the closed set of withdrawal outcomes.
type WithdrawalStatus int

const (
	WithdrawalSuccess WithdrawalStatus = iota + 1
	WithdrawalAccountNotFound
	WithdrawalInsufficientFunds
)

func (s WithdrawalStatus) String() string {
	switch s {
	case WithdrawalSuccess:
		return "SUCCESS"
	case WithdrawalAccountNotFound:
		return "ACCOUNT_NOT_FOUND"
	case WithdrawalInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	}
	return "UNKNOWN"
}

type WithdrawalResult struct {
	Status  WithdrawalStatus
	Account *Account
	Amount  int64
}

// DepositStatus is the closed set of deposit outcomes.
type DepositStatus int

const (
	DepositSuccess DepositStatus = iota + 1
	DepositAccountNotFound
)

func (s DepositStatus) String() string {
	switch s {
	case DepositSuccess:
		return "SUCCESS"
	case DepositAccountNotFound:
		return "ACCOUNT_NOT_FOUND"
	}
	return "UNKNOWN"
}

type DepositResult struct {
	Status  DepositStatus
	Account *Account
	Amount  int64
}

// CreationStatus is the closed set of account creation outcomes.
type CreationStatus int

const (
	CreationSuccess CreationStatus = iota + 1
	CreationDuplicateAccount
	CreationError
)

func (s CreationStatus) String() string {
	switch s {
	case CreationSuccess:
		return "SUCCESS"
	case CreationDuplicateAccount:
		return "DUPLICATE_ACCOUNT"
	case CreationError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// CreationResult carries the new account id only on success.
type CreationResult struct {
	Status    CreationStatus
	AccountID int64
}

// DeletionStatus is the closed set of deletion outcomes.
type DeletionStatus int

const (
	DeletionSuccess DeletionStatus = iota + 1
	DeletionConfirmationFailure
)

func (s DeletionStatus) String() string {
	switch s {
	case DeletionSuccess:
		return "SUCCESS"
	case DeletionConfirmationFailure:
		return "CONFIRMATION_FAILURE"
	}
	return "UNKNOWN"
}

type DeletionResult struct {
	Status    DeletionStatus
	AccountID int64
}

// AccountInfo pairs an account with the user that owns it, for search display.
type AccountInfo struct {
	Account *Account
	User    *User
}
