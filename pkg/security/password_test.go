package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hashed, err := h.Hash("Elorrieta2024")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$2a$"))
	assert.True(t, h.Verify("Elorrieta2024", hashed))
	assert.False(t, h.Verify("elorrieta2024", hashed))
	assert.False(t, Verify("Elorrieta2024", "not-a-hash"))

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestDefaultCost(t *testing.T) {
	hashed, err := Hash("x")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}
