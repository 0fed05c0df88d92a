package helpers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	var previous int64

	for i := 0; i < 1000; i++ {
		id := Generate()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		value, err := strconv.ParseInt(id, 10, 64)
		require.NoError(t, err)
		require.Greater(t, value, previous)
		previous = value
	}
}
