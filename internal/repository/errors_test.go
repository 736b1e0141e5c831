package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapStore(t *testing.T) {
	assert.NoError(t, WrapStore("find account", nil))

	cause := errors.New("disk I/O error")
	err := WrapStore("find account", cause)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "find account: disk I/O error", err.Error())

	var storeErr *StoreError
	require.True(t, errors.As(fmt.Errorf("withdraw: %w", err), &storeErr))
	assert.Equal(t, "find account", storeErr.Op)
}

func TestAccountPatchEmpty(t *testing.T) {
	assert.True(t, AccountPatch{}.Empty())
	assert.False(t, AccountPatch{Status: "Disabled"}.Empty())
}
