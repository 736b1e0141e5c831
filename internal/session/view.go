package session

import "atm-terminal/internal/domain"

// View is the prompting and rendering collaborator. Prompts return only
// syntactically valid values; account-number prompts return 0 for cancel.
type View interface {
	DisplayMessage(message string)
	DisplayError(message string)
	DisplayCustomerMenu()
	DisplayAdminMenu()
	DisplayUpdateChoice()
	ShowAccountInfo(account *domain.Account, user *domain.User)

	PromptLogin() (string, error)
	PromptPin() (string, error)
	PromptMenuChoice() (int, error)
	PromptWithdrawal() (int64, error)
	PromptDeposit() (int64, error)
	PromptHolderName() (string, error)
	PromptStartingBalance() (int64, error)
	PromptAccountStatus() (bool, error)
	PromptAccountNumber() (int64, error)
	PromptAccountNumberForDeletion() (int64, error)
	ConfirmDeletion(holder string) (int64, error)
	PromptNewHolderName() (string, error)
	PromptNewStatus() (string, error)
	PromptNewLogin() (string, error)
	PromptNewPin() (string, error)
}
