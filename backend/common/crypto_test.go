package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword2Hash(t *testing.T) {
	hash, err := Password2Hash("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)

	assert.True(t, ValidatePasswordAndHash("s3cretpass", hash))
	assert.False(t, ValidatePasswordAndHash("wrong", hash))
}

func TestGetUUID(t *testing.T) {
	a := GetUUID()
	b := GetUUID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "-")
}
