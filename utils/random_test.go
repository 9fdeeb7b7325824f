package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode_LengthAndCharset(t *testing.T) {
	for _, n := range []int{1, 4, 6, 16} {
		code, err := GenerateCode(n)
		require.NoError(t, err)
		assert.Len(t, code, n)
		for _, c := range code {
			assert.Contains(t, "0123456789ABCDEF", string(c))
		}
	}
}

func TestGenerateCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(8)
		require.NoError(t, err)
		seen[code] = true
	}
	// 100 draws of 8 hex chars should essentially never collide.
	assert.Greater(t, len(seen), 95)
}

func TestTicketNumber_Format(t *testing.T) {
	number, err := TicketNumber()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(number, "TKT-"))
	parts := strings.Split(number, "-")
	require.Len(t, parts, 3)
	assert.NotEmpty(t, parts[1])
	assert.NotEmpty(t, parts[2])
}

func TestTicketNumber_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		number, err := TicketNumber()
		require.NoError(t, err)
		require.False(t, seen[number], "duplicate ticket number %s", number)
		seen[number] = true
	}
}
