// Package terminal implements the interactive prompts and message rendering of
// the ATM over a line-oriented reader and writer. Prompts re-ask until the
// input is syntactically valid; semantic checks belong to the caller.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"atm-terminal/internal/domain"
)

// ErrInputClosed is returned by every prompt once the input is exhausted.
var ErrInputClosed = errors.New("terminal input closed")

// Console reads answers from in and writes prompts and messages to out.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	errorTag *color.Color
}

func NewConsole(in io.Reader, out io.Writer, colored bool) *Console {
	tag := color.New(color.FgRed, color.Bold)
	if colored {
		tag.EnableColor()
	} else {
		tag.DisableColor()
	}
	return &Console{
		in:       bufio.NewReader(in),
		out:      out,
		errorTag: tag,
	}
}

func (c *Console) DisplayMessage(message string) {
	fmt.Fprintln(c.out, message)
}

func (c *Console) DisplayError(message string) {
	c.errorTag.Fprint(c.out, "The following error occurred: ")
	fmt.Fprintln(c.out, message)
}

func (c *Console) DisplayCustomerMenu() {
	c.printLines(
		"",
		"1----Withdraw Cash",
		"2----Deposit Cash",
		"3----Display Balance",
		"4----Exit",
	)
}

func (c *Console) DisplayAdminMenu() {
	c.printLines(
		"",
		"1----Create New Account",
		"2----Delete Existing Account",
		"3----Update Account Information",
		"4----Search for Account",
		"5----Exit",
	)
}

func (c *Console) DisplayUpdateChoice() {
	c.printLines(
		"",
		"Select the field to update:",
		"1----Update Holder's Name",
		"2----Update Status",
		"3----Update Login",
		"4----Update Pin Code",
		"5----Save and Exit",
	)
}

// ShowAccountInfo prints the full account record, pin included.
func (c *Console) ShowAccountInfo(account *domain.Account, user *domain.User) {
	c.printLines(
		fmt.Sprintf("Account #%d", account.ID),
		"Holder: "+account.HolderName,
		fmt.Sprintf("Balance: $%d", account.Balance),
		"Status: "+string(account.Status),
		"Login: "+user.Login,
		"Pin Code: "+user.Pin,
	)
}

func (c *Console) PromptLogin() (string, error) {
	return c.promptWord("Enter Login: ")
}

// PromptNewLogin returns "" for a blank line. A login must be one word so
// that PromptLogin can read it back.
func (c *Console) PromptNewLogin() (string, error) {
	for {
		login, err := c.promptLine("Enter new Login (blank to keep): ")
		if err != nil {
			return "", err
		}
		if !strings.ContainsAny(login, " \t") {
			return login, nil
		}
		c.DisplayMessage("Login cannot contain spaces. Please try again.")
	}
}

func (c *Console) PromptPin() (string, error) {
	return c.promptPin("Enter Pin: ")
}

func (c *Console) PromptNewPin() (string, error) {
	return c.promptPin("Enter new Pin: ")
}

func (c *Console) PromptHolderName() (string, error) {
	for {
		name, err := c.promptLine("Enter Holder's Name: ")
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		c.DisplayMessage("Holder's name cannot be empty. Please try again.")
	}
}

func (c *Console) PromptNewHolderName() (string, error) {
	return c.promptLine("Enter new Holder's Name (blank to keep): ")
}

func (c *Console) PromptStartingBalance() (int64, error) {
	for {
		line, err := c.promptLine("Enter Starting Balance: ")
		if err != nil {
			return 0, err
		}
		balance, err := strconv.ParseInt(line, 10, 64)
		if err == nil && balance >= 0 {
			return balance, nil
		}
		c.DisplayMessage("Starting balance must be a non-negative whole number. Please try again.")
	}
}

func (c *Console) PromptAccountStatus() (bool, error) {
	return c.promptYesNo("Is the Account Active? (Y/N): ")
}

// PromptNewStatus returns the stored status name for the admin's Y/N answer.
func (c *Console) PromptNewStatus() (string, error) {
	active, err := c.promptYesNo("Is the Account Active? (Y/N): ")
	if err != nil {
		return "", err
	}
	return string(domain.StatusFromActive(active)), nil
}

func (c *Console) PromptMenuChoice() (int, error) {
	for {
		line, err := c.promptLine("Enter choice: ")
		if err != nil {
			return 0, err
		}
		choice, err := strconv.Atoi(line)
		if err == nil {
			return choice, nil
		}
		c.DisplayMessage("Invalid input. Please enter a valid integer.")
	}
}

func (c *Console) PromptWithdrawal() (int64, error) {
	return c.promptAmount("Enter the withdrawal amount: ")
}

func (c *Console) PromptDeposit() (int64, error) {
	return c.promptAmount("Enter the cash amount to deposit: ")
}

// PromptAccountNumber returns a positive account number, or 0 when the admin cancels.
func (c *Console) PromptAccountNumber() (int64, error) {
	return c.promptAccountNumber("Enter the Account number (0 to cancel): ")
}

func (c *Console) PromptAccountNumberForDeletion() (int64, error) {
	return c.promptAccountNumber("Enter the account number to which you want to delete (0 to cancel): ")
}

// ConfirmDeletion asks the admin to re-enter the account number. Any integer is accepted.
func (c *Console) ConfirmDeletion(holder string) (int64, error) {
	prompt := fmt.Sprintf("You wish to delete the account held by %s. If this is correct, please re-enter the account number: ", holder)
	for {
		line, err := c.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return n, nil
		}
		c.DisplayMessage("Invalid input. Please enter an integer.")
	}
}

func (c *Console) promptPin(prompt string) (string, error) {
	for {
		pin, err := c.promptLine(prompt)
		if err != nil {
			return "", err
		}
		if domain.ValidPin(pin) {
			return pin, nil
		}
		c.DisplayMessage(fmt.Sprintf("Invalid pin. Please enter exactly %d digits.", domain.PinLength))
	}
}

func (c *Console) promptAmount(prompt string) (int64, error) {
	for {
		line, err := c.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		amount, err := strconv.ParseInt(line, 10, 64)
		if err == nil && amount > 0 {
			return amount, nil
		}
		c.DisplayMessage("Invalid input. Please enter a positive integer.")
	}
}

func (c *Console) promptAccountNumber(prompt string) (int64, error) {
	for {
		line, err := c.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		switch {
		case err != nil:
			c.DisplayMessage("Invalid input. Please enter a valid integer.")
		case n < 0:
			c.DisplayMessage("Account number must be greater than 0. Please try again.")
		default:
			return n, nil
		}
	}
}

func (c *Console) promptYesNo(prompt string) (bool, error) {
	for {
		line, err := c.promptLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		c.DisplayMessage("Invalid input. Please enter 'Y' or 'N'.")
	}
}

// promptWord re-prompts until the line holds at least one non-space token and returns the first.
func (c *Console) promptWord(prompt string) (string, error) {
	for {
		line, err := c.promptLine(prompt)
		if err != nil {
			return "", err
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], nil
		}
	}
}

func (c *Console) promptLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *Console) printLines(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(c.out, line)
	}
}
