package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atm-terminal/internal/domain"
)

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	return NewConsole(strings.NewReader(input), &out, false), &out
}

func TestPromptPinRejectsMalformed(t *testing.T) {
	console, out := newTestConsole("1234\nabcde\n123456\n12345\n")

	pin, err := console.PromptPin()
	require.NoError(t, err)
	assert.Equal(t, "12345", pin)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid pin. Please enter exactly 5 digits."))
}

func TestPromptAmountRequiresPositive(t *testing.T) {
	console, out := newTestConsole("0\n-4\nten\n250\n")

	amount, err := console.PromptWithdrawal()
	require.NoError(t, err)
	assert.Equal(t, int64(250), amount)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid input. Please enter a positive integer."))
}

func TestPromptStartingBalanceAllowsZero(t *testing.T) {
	console, _ := newTestConsole("-1\n0\n")

	balance, err := console.PromptStartingBalance()
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestPromptMenuChoice(t *testing.T) {
	console, out := newTestConsole("x\n\n7\n")

	choice, err := console.PromptMenuChoice()
	require.NoError(t, err)
	assert.Equal(t, 7, choice)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input. Please enter a valid integer."))
}

func TestPromptYesNo(t *testing.T) {
	console, _ := newTestConsole("maybe\nY\nn\n")

	active, err := console.PromptAccountStatus()
	require.NoError(t, err)
	assert.True(t, active)

	status, err := console.PromptNewStatus()
	require.NoError(t, err)
	assert.Equal(t, string(domain.AccountStatusDisabled), status)
}

func TestPromptAccountNumber(t *testing.T) {
	console, out := newTestConsole("-3\nabc\n0\n42\n")

	n, err := console.PromptAccountNumber()
	require.NoError(t, err)
	assert.Zero(t, n, "zero cancels")
	assert.Contains(t, out.String(), "Account number must be greater than 0.")

	n, err = console.PromptAccountNumberForDeletion()
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestConfirmDeletionAcceptsAnyInteger(t *testing.T) {
	console, out := newTestConsole("nope\n-9\n")

	n, err := console.ConfirmDeletion("Ann A")
	require.NoError(t, err)
	assert.Equal(t, int64(-9), n)
	assert.Contains(t, out.String(), "You wish to delete the account held by Ann A.")
}

func TestHolderNames(t *testing.T) {
	console, _ := newTestConsole("\n  Ann  Marie A  \n\n")

	name, err := console.PromptHolderName()
	require.NoError(t, err)
	assert.Equal(t, "Ann  Marie A", name)

	name, err = console.PromptNewHolderName()
	require.NoError(t, err)
	assert.Empty(t, name, "blank keeps the stored value")
}

func TestPromptLoginTakesFirstToken(t *testing.T) {
	console, _ := newTestConsole("   \nann extra\n")

	login, err := console.PromptLogin()
	require.NoError(t, err)
	assert.Equal(t, "ann", login)
}

func TestPromptNewLoginRejectsSpaces(t *testing.T) {
	console, out := newTestConsole("ann smith\n  ann\tb \n  annie  \n")

	login, err := console.PromptNewLogin()
	require.NoError(t, err)
	assert.Equal(t, "annie", login)
	assert.Equal(t, 2, strings.Count(out.String(), "Login cannot contain spaces. Please try again."))
}

func TestPromptNewLoginBlankKeeps(t *testing.T) {
	console, out := newTestConsole("   \n")

	login, err := console.PromptNewLogin()
	require.NoError(t, err)
	assert.Empty(t, login)
	assert.NotContains(t, out.String(), "Login cannot contain spaces.")
}

func TestNewLoginReadsBackAsLogin(t *testing.T) {
	console, _ := newTestConsole("ann smith\nann_smith\nann_smith\n")

	stored, err := console.PromptNewLogin()
	require.NoError(t, err)
	entered, err := console.PromptLogin()
	require.NoError(t, err)
	assert.Equal(t, stored, entered)
}

func TestPromptNewPinRequiresFiveDigits(t *testing.T) {
	console, out := newTestConsole("\n9876\n98765\n")

	pin, err := console.PromptNewPin()
	require.NoError(t, err)
	assert.Equal(t, "98765", pin)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid pin. Please enter exactly 5 digits."))
}

func TestInputClosed(t *testing.T) {
	console, _ := newTestConsole("12")

	_, err := console.PromptPin()
	assert.ErrorIs(t, err, ErrInputClosed)

	_, err = console.PromptMenuChoice()
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestLastLineWithoutNewline(t *testing.T) {
	console, _ := newTestConsole("3")

	choice, err := console.PromptMenuChoice()
	require.NoError(t, err)
	assert.Equal(t, 3, choice)
}

func TestDisplayErrorAndAccountInfo(t *testing.T) {
	console, out := newTestConsole("")

	console.DisplayError("Account not found.")
	console.ShowAccountInfo(
		domain.NewAccount(4, "Dan D", 75, domain.AccountStatusActive),
		domain.NewCustomer("dan", "44444", nil),
	)

	assert.Equal(t, strings.Join([]string{
		"The following error occurred: Account not found.",
		"Account #4",
		"Holder: Dan D",
		"Balance: $75",
		"Status: Active",
		"Login: dan",
		"Pin Code: 44444",
		"",
	}, "\n"), out.String())
}
