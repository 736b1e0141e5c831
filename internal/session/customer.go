package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"atm-terminal/internal/domain"
)

func (c *Controller) handleWithdrawal(ctx context.Context, s *Session) error {
	amount, err := c.view.PromptWithdrawal()
	if err != nil {
		return err
	}

	result, err := c.transactions.Withdraw(ctx, s.User, amount)
	if err != nil {
		s.log.WithError(err).WithField("amount", amount).Error("withdrawal failed")
		return err
	}

	switch result.Status {
	case domain.WithdrawalAccountNotFound:
		c.view.DisplayError(msgNotFound)
	case domain.WithdrawalInsufficientFunds:
		c.view.DisplayMessage("Withdrawal amount exceeds current balance. Please try again.")
	case domain.WithdrawalSuccess:
		c.view.DisplayMessage("Cash Successfully Withdrawn.")
		c.showReceipt(result.Account, fmt.Sprintf("Withdrawn: $%d", result.Amount))
	}
	s.log.WithFields(logrus.Fields{
		"account_id": accountID(result.Account),
		"amount":     amount,
		"result":     result.Status.String(),
	}).Info("withdrawal")
	return nil
}

func (c *Controller) handleDeposit(ctx context.Context, s *Session) error {
	amount, err := c.view.PromptDeposit()
	if err != nil {
		return err
	}

	result, err := c.transactions.Deposit(ctx, s.User, amount)
	if err != nil {
		s.log.WithError(err).WithField("amount", amount).Error("deposit failed")
		return err
	}

	switch result.Status {
	case domain.DepositAccountNotFound:
		c.view.DisplayError(msgNotFound)
	case domain.DepositSuccess:
		c.view.DisplayMessage("Cash Successfully Deposited.")
		c.showReceipt(result.Account, fmt.Sprintf("Deposited: $%d", result.Amount))
	}
	s.log.WithFields(logrus.Fields{
		"account_id": accountID(result.Account),
		"amount":     amount,
		"result":     result.Status.String(),
	}).Info("deposit")
	return nil
}

// handleBalanceInfo reads the session's account directly.
func (c *Controller) handleBalanceInfo(s *Session) {
	account := s.User.Account
	if account == nil {
		c.view.DisplayError(msgNotFound)
		return
	}
	c.showReceipt(account)
}

func (c *Controller) showReceipt(account *domain.Account, lines ...string) {
	c.view.DisplayMessage(fmt.Sprintf("Account #%d", account.ID))
	c.view.DisplayMessage("Date: " + c.today())
	for _, line := range lines {
		c.view.DisplayMessage(line)
	}
	c.view.DisplayMessage(fmt.Sprintf("Balance: $%d", account.Balance))
}

func accountID(account *domain.Account) int64 {
	if account == nil {
		return 0
	}
	return account.ID
}
