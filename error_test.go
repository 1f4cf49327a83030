package grimoire_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pf2fr/grimoire"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()

		err := grimoire.Errorf(grimoire.ENOTFOUND, "entry not found")
		assert.Equal(t, grimoire.ENOTFOUND, grimoire.ErrorCode(err))
		assert.Equal(t, "entry not found", grimoire.ErrorMessage(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", grimoire.Errorf(grimoire.EINVALID, "bad filter"))
		assert.Equal(t, grimoire.EINVALID, grimoire.ErrorCode(err))
		assert.Equal(t, "bad filter", grimoire.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()

		err := errors.New("plain")
		assert.Equal(t, grimoire.EINTERNAL, grimoire.ErrorCode(err))
		assert.Equal(t, "Internal error.", grimoire.ErrorMessage(err))
	})

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, grimoire.ErrorCode(nil))
		assert.Empty(t, grimoire.ErrorMessage(nil))
	})
}
