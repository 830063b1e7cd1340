package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNotFound, "heir not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeValidation))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		inner := New(CodeNotFound, "heir not found")
		outer := Wrap(inner, CodeInternal, "load heir")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeConflict, "already approved"))
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("gating violation satisfies validation", func(t *testing.T) {
		err := New(CodeGatingViolation, "parent is still alive")
		assert.True(t, HasCode(err, CodeGatingViolation))
		assert.True(t, HasCode(err, CodeValidation))
	})

	t.Run("validation does not satisfy gating", func(t *testing.T) {
		err := New(CodeValidation, "name is required")
		assert.False(t, HasCode(err, CodeGatingViolation))
	})

	t.Run("uncoded error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "bad")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestCascadeError(t *testing.T) {
	cause := errors.New("store unavailable")
	err := NewCascadeError([]string{"a", "b"}, []string{"c"}, cause)

	require.Error(t, err)
	assert.True(t, HasCode(err, CodeCascadeFailure))
	assert.ErrorIs(t, err, cause)

	var cascade *CascadeError
	require.True(t, errors.As(err, &cascade))
	assert.Equal(t, []string{"a", "b"}, cascade.DeletedIDs)
	assert.Equal(t, []string{"c"}, cascade.RemainingIDs)
}
