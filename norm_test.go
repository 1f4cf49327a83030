package grimoire_test

import (
	"sync"
	"testing"

	"github.com/pf2fr/grimoire"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("strips diacritics and lowers", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "demon", grimoire.Normalize("Démon"))
		assert.Equal(t, "epee degainee", grimoire.Normalize("Épée Dégainée"))
		assert.Equal(t, "creature", grimoire.Normalize("créature"))
	})

	t.Run("plain ascii is only lowered", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "fire bolt", grimoire.Normalize("Fire Bolt"))
	})

	t.Run("safe under concurrent callers", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					assert.Equal(t, "demon eclair aeiou", grimoire.Normalize("Démon Éclair àéîôû"))
				}
			}()
		}
		wg.Wait()
	})
}

func TestHasDiacritics(t *testing.T) {
	t.Parallel()

	assert.True(t, grimoire.HasDiacritics("démon"))
	assert.False(t, grimoire.HasDiacritics("demon"))
	assert.False(t, grimoire.HasDiacritics("Loup"))
}
