package rand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrelationID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 1000 {
		id := NewCorrelationID(21)
		require.Len(t, id, 21)
		for _, r := range id {
			require.True(t, strings.ContainsRune(charset, r), "unexpected rune %q", r)
		}
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewCorrelationID_NonPositiveLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", NewCorrelationID(0))
	assert.Equal(t, "", NewCorrelationID(-3))
}

func TestCharsetHasNoDuplicates(t *testing.T) {
	t.Parallel()

	require.Len(t, charset, charsetMask+1)
	seen := make(map[rune]bool)
	for _, r := range charset {
		assert.False(t, seen[r], "duplicate %q", r)
		seen[r] = true
	}
}
