package domain

// Role tags the two user variants.
type Role string

const (
	RoleCustomer      Role = "Customer"
	RoleAdministrator Role = "Admin"
)

// PinLength is the exact number of digits in every pin.
const PinLength = 5

// User is a credential-bearing identity. A Customer carries its Account;
// an Administrator never does.
type User struct {
	Role    Role
	Login   string
	Pin     string
	Account *Account
}

func NewCustomer(login, pin string, account *Account) *User {
	return &User{
		Role:    RoleCustomer,
		Login:   login,
		Pin:     pin,
		Account: account,
	}
}

func NewAdministrator(login, pin string) *User {
	return &User{
		Role:  RoleAdministrator,
		Login: login,
		Pin:   pin,
	}
}

func (u *User) IsCustomer() bool {
	return u != nil && u.Role == RoleCustomer
}

func (u *User) IsAdministrator() bool {
	return u != nil && u.Role == RoleAdministrator
}

// ValidPin reports whether pin is exactly PinLength ASCII digits.
func ValidPin(pin string) bool {
	if len(pin) != PinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}
