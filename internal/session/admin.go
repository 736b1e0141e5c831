package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"atm-terminal/internal/domain"
)

func (c *Controller) handleAccountCreation(ctx context.Context, s *Session) error {
	login, err := c.view.PromptLogin()
	if err != nil {
		return err
	}
	pin, err := c.view.PromptPin()
	if err != nil {
		return err
	}
	holder, err := c.view.PromptHolderName()
	if err != nil {
		return err
	}
	balance, err := c.view.PromptStartingBalance()
	if err != nil {
		return err
	}
	active, err := c.view.PromptAccountStatus()
	if err != nil {
		return err
	}

	result, err := c.admin.CreateAccount(ctx, login, pin, holder, balance, active)
	if err != nil {
		s.log.WithError(err).WithField("new_login", login).Error("account creation failed")
		return err
	}

	switch result.Status {
	case domain.CreationDuplicateAccount:
		c.view.DisplayMessage("Account Creation Failed - Duplicate Entry.")
	case domain.CreationError:
		c.view.DisplayMessage("Account Creation Failed - An Error Occurred.")
	case domain.CreationSuccess:
		c.view.DisplayMessage(fmt.Sprintf("Account Successfully Created – the account number assigned is: %d", result.AccountID))
	}
	s.log.WithFields(logrus.Fields{
		"account_id": result.AccountID,
		"new_login":  login,
		"result":     result.Status.String(),
	}).Info("account creation")
	return nil
}

// lookupAccount prompts until the number names an existing account.
// It returns nil when the admin cancels with 0.
func (c *Controller) lookupAccount(ctx context.Context, prompt func() (int64, error)) (*domain.Account, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := prompt()
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, nil
		}

		account, err := c.admin.GetAccountIfExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if account != nil {
			return account, nil
		}
		c.view.DisplayMessage(msgNoSuchAccount)
	}
}

func (c *Controller) handleAccountDeletion(ctx context.Context, s *Session) error {
	account, err := c.lookupAccount(ctx, c.view.PromptAccountNumberForDeletion)
	if err != nil || account == nil {
		return err
	}

	confirmation, err := c.view.ConfirmDeletion(account.HolderName)
	if err != nil {
		return err
	}

	result, err := c.admin.DeleteAccount(ctx, account.ID, confirmation)
	if err != nil {
		s.log.WithError(err).WithField("account_id", account.ID).Error("account deletion failed")
		return err
	}

	switch result.Status {
	case domain.DeletionConfirmationFailure:
		c.view.DisplayMessage("Input does not match the account number. Deletion cancelled.")
	case domain.DeletionSuccess:
		c.view.DisplayMessage("Account Deleted Successfully.")
	}
	s.log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"result":     result.Status.String(),
	}).Info("account deletion")
	return nil
}

// stagedUpdate holds sub-menu edits until commit; empty fields stay unchanged.
type stagedUpdate struct {
	holder string
	status string
	login  string
	pin    string
}

func (c *Controller) handleAccountUpdate(ctx context.Context, s *Session) error {
	account, err := c.lookupAccount(ctx, c.view.PromptAccountNumber)
	if err != nil || account == nil {
		return err
	}

	var staged stagedUpdate
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.view.DisplayUpdateChoice()
		choice, err := c.view.PromptMenuChoice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			if staged.holder, err = c.view.PromptNewHolderName(); err != nil {
				return err
			}
			c.view.DisplayMessage("Holder's name update registered.")
		case 2:
			if staged.status, err = c.view.PromptNewStatus(); err != nil {
				return err
			}
			c.view.DisplayMessage("Account status update registered.")
		case 3:
			if staged.login, err = c.view.PromptNewLogin(); err != nil {
				return err
			}
			c.view.DisplayMessage("Login update registered.")
		case 4:
			if staged.pin, err = c.view.PromptNewPin(); err != nil {
				return err
			}
			c.view.DisplayMessage("Pin code update registered.")
		case 5:
			return c.commitUpdate(ctx, s, account.ID, staged)
		default:
			c.view.DisplayMessage(msgInvalidChoice)
		}
	}
}

func (c *Controller) commitUpdate(ctx context.Context, s *Session, id int64, staged stagedUpdate) error {
	updated, err := c.admin.UpdateAccount(ctx, id, staged.holder, staged.status, staged.login, staged.pin)
	if err != nil {
		s.log.WithError(err).WithField("account_id", id).Error("account update failed")
		return err
	}

	if updated {
		c.view.DisplayMessage("Account updated successfully.")
	} else {
		c.view.DisplayMessage("An error occurred. Please try again.")
	}
	s.log.WithFields(logrus.Fields{
		"account_id":     id,
		"updated":        updated,
		"holder_changed": staged.holder != "",
		"status_changed": staged.status != "",
		"login_changed":  staged.login != "",
		"pin_changed":    staged.pin != "",
	}).Info("account update")
	return nil
}

func (c *Controller) handleAccountSearch(ctx context.Context, s *Session) error {
	account, err := c.lookupAccount(ctx, c.view.PromptAccountNumber)
	if err != nil || account == nil {
		return err
	}

	info, err := c.admin.SearchAccount(ctx, account.ID)
	if err != nil {
		s.log.WithError(err).WithField("account_id", account.ID).Error("account search failed")
		return err
	}
	if info == nil {
		c.view.DisplayMessage(msgNoSuchAccount)
		return nil
	}

	c.view.ShowAccountInfo(info.Account, info.User)
	s.log.WithField("account_id", account.ID).Info("account search")
	return nil
}
