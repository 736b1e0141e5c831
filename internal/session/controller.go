// Package session drives one authenticated terminal session: the credential
// loop, then the customer or administrator menu until the user exits.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"atm-terminal/internal/domain"
	"atm-terminal/internal/service"
	"atm-terminal/internal/terminal"
)

const dateLayout = "01/02/2006"

const (
	msgWelcome       = "Welcome to the ATM System!"
	msgInvalidLogin  = "Invalid login or pin code. Please try again.\n"
	msgGoodbye       = "Thank you for using the ATM. Goodbye!"
	msgInvalidChoice = "Invalid choice. Please try again."
	msgNotFound      = "Account not found."
	msgNoSuchAccount = "An Account with this account number does not exist."
)

// UserFinder resolves a login and pin to a user, or nil when nothing matches.
type UserFinder interface {
	FindUserByCredentials(ctx context.Context, login, pin string) (*domain.User, error)
}

// Session is the authenticated state handed to every workflow.
type Session struct {
	ID        string
	User      *domain.User
	StartedAt time.Time

	log logrus.FieldLogger
}

// Controller authenticates a user and runs the menu for their role.
type Controller struct {
	users        UserFinder
	transactions service.TransactionService
	admin        service.AdminService
	view         View
	logger       logrus.FieldLogger
	now          func() time.Time
}

type Option func(*Controller)

// WithClock overrides the time source used for receipts.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(users UserFinder, transactions service.TransactionService, admin service.AdminService, view View, logger logrus.FieldLogger, opts ...Option) *Controller {
	if logger == nil {
		logger = logrus.New()
	}
	c := &Controller{
		users:        users,
		transactions: transactions,
		admin:        admin,
		view:         view,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run welcomes the user, authenticates, and runs the role menu until exit.
// Running out of input ends the session without error; store failures are returned.
func (c *Controller) Run(ctx context.Context) error {
	c.view.DisplayMessage(msgWelcome)

	s, err := c.Authenticate(ctx)
	if err == nil {
		switch s.User.Role {
		case domain.RoleCustomer:
			c.view.DisplayMessage("\nLogin Successful! Welcome, Customer.")
			err = c.customerMenu(ctx, s)
		case domain.RoleAdministrator:
			c.view.DisplayMessage("\nLogin Successful! Welcome, Administrator.")
			err = c.adminMenu(ctx, s)
		default:
			err = fmt.Errorf("unsupported role %q", s.User.Role)
		}
	}

	if errors.Is(err, terminal.ErrInputClosed) {
		c.logger.Info("input closed, ending session")
		return nil
	}
	return err
}

// Authenticate asks for credentials until they match a user. There is no attempt limit.
func (c *Controller) Authenticate(ctx context.Context) (*Session, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		login, err := c.view.PromptLogin()
		if err != nil {
			return nil, err
		}
		pin, err := c.view.PromptPin()
		if err != nil {
			return nil, err
		}

		user, err := c.users.FindUserByCredentials(ctx, login, pin)
		if err != nil {
			c.logger.WithError(err).WithField("login", login).Error("credential lookup failed")
			return nil, fmt.Errorf("authenticate %q: %w", login, err)
		}
		if user == nil {
			c.logger.WithField("login", login).Warn("invalid credentials")
			c.view.DisplayMessage(msgInvalidLogin)
			continue
		}

		s := &Session{
			ID:        uuid.NewString(),
			User:      user,
			StartedAt: c.now(),
		}
		s.log = c.logger.WithFields(logrus.Fields{
			"session": s.ID,
			"login":   user.Login,
			"role":    string(user.Role),
		})
		s.log.Info("session started")
		return s, nil
	}
}

func (c *Controller) customerMenu(ctx context.Context, s *Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.view.DisplayCustomerMenu()
		choice, err := c.view.PromptMenuChoice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.handleWithdrawal(ctx, s)
		case 2:
			err = c.handleDeposit(ctx, s)
		case 3:
			c.handleBalanceInfo(s)
		case 4:
			c.view.DisplayMessage(msgGoodbye)
			s.log.Info("session ended")
			return nil
		default:
			c.view.DisplayMessage(msgInvalidChoice)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) adminMenu(ctx context.Context, s *Session) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.view.DisplayAdminMenu()
		choice, err := c.view.PromptMenuChoice()
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.handleAccountCreation(ctx, s)
		case 2:
			err = c.handleAccountDeletion(ctx, s)
		case 3:
			err = c.handleAccountUpdate(ctx, s)
		case 4:
			err = c.handleAccountSearch(ctx, s)
		case 5:
			c.view.DisplayMessage(msgGoodbye)
			s.log.Info("session ended")
			return nil
		default:
			c.view.DisplayMessage(msgInvalidChoice)
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) today() string {
	return c.now().Format(dateLayout)
}
