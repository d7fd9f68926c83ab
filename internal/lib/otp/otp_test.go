package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		code, err := NewCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^\d{6}$`, code)
		seen[code] = struct{}{}
	}
	// 20 подряд одинаковых кодов означали бы сломанный генератор
	assert.Greater(t, len(seen), 1)
}
