//go:build unit

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	first := Mark(New("first"), ErrConflict)
	second := Mark(New("second"), ErrConflict)

	t.Run("matches its category through wraps", func(t *testing.T) {
		wrapped := Wrap(first, "context")
		assert.True(t, Is(wrapped, ErrConflict))
		assert.True(t, errors.Is(wrapped, ErrConflict))
		assert.Equal(t, "context: first", wrapped.Error())
	})

	t.Run("siblings in one category stay distinct", func(t *testing.T) {
		assert.True(t, Is(Wrap(first, "x"), first))
		assert.False(t, Is(first, second))
		assert.False(t, Is(second, first))
	})

	t.Run("category does not match a specific sentinel", func(t *testing.T) {
		assert.False(t, Is(ErrConflict, first))
	})

	t.Run("nested categories are transitive", func(t *testing.T) {
		expired := Mark(New("link expired"), ErrTokenExpired)
		assert.True(t, Is(expired, ErrTokenExpired))
		assert.True(t, Is(expired, ErrToken))
		assert.False(t, Is(expired, ErrTokenUsed))
	})

	t.Run("nil error yields the mark", func(t *testing.T) {
		assert.Equal(t, ErrValidation, Mark(nil, ErrValidation))
	})
}
