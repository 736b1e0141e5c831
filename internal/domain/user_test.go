package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserVariants(t *testing.T) {
	acc := NewAccount(7, "Cara C", 10, AccountStatusActive)
	customer := NewCustomer("cara", "12345", acc)
	admin := NewAdministrator("root", "54321")

	assert.True(t, customer.IsCustomer())
	assert.False(t, customer.IsAdministrator())
	assert.Same(t, acc, customer.Account)

	assert.True(t, admin.IsAdministrator())
	assert.False(t, admin.IsCustomer())
	assert.Nil(t, admin.Account)

	var nobody *User
	assert.False(t, nobody.IsCustomer())
	assert.False(t, nobody.IsAdministrator())
}

func TestValidPin(t *testing.T) {
	for _, pin := range []string{"12345", "00000", "99999"} {
		assert.True(t, ValidPin(pin), pin)
	}
	for _, pin := range []string{"", "1234", "123456", "12a45", " 1234", "１２３４５"} {
		assert.False(t, ValidPin(pin), pin)
	}
}
