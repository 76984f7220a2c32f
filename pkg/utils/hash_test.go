package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashString(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
}

func TestHashDataIgnoresKeyOrder(t *testing.T) {
	a, err := HashData(map[string]any{"email": "a@example.com", "name": "Ada"})
	require.NoError(t, err)
	b, err := HashData(map[string]any{"name": "Ada", "email": "a@example.com"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestHashDataRejectsUnencodable(t *testing.T) {
	_, err := HashData(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
