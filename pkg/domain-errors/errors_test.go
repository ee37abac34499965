package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := New(CodeValidation, "invalid phone: 314512")
		assert.Equal(t, "invalid phone: 314512", err.Error())
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "secret store unreachable")
		assert.Equal(t, "secret store unreachable: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", New(CodeMethodNotAllowed, "nope"))
		de, ok := Is(err)
		require.True(t, ok)
		assert.Equal(t, CodeMethodNotAllowed, de.Code)
	})

	t.Run("plain errors have no code", func(t *testing.T) {
		_, ok := Is(errors.New("boom"))
		assert.False(t, ok)
		assert.False(t, HasCode(nil, CodeInternal))
	})
}
