package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	main "github.com/pf2fr/grimoire/cmd/grimoire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, strings.NewReader(""), &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "grimoire")
	assert.Contains(t, stdout.String(), "build")
	assert.Contains(t, stdout.String(), "search")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arguments provided")
}

func TestMain_Run_MissingDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer
	db := filepath.Join(t.TempDir(), "nope.db")

	err := m.Run(context.Background(), []string{"--db", db, "search", "feu"}, strings.NewReader(""), &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "grimoire build")
}

const fireBoltAnnotation = `Name: Fire Bolt
Nom: Trait de feu
État: Libre

-- Desc (en) --
<p>You fling a bolt of fire.</p>
-- Desc (fr) --
<p>Vous projetez un trait de feu.</p>
-- End desc ---
`

const fireBoltRecord = `{
	"_id": "sxQZ6yqTn0czJxVd",
	"name": "Fire Bolt",
	"type": "spell",
	"system": {
		"level": {"value": 1},
		"traits": {"value": ["feu", "évocation"]}
	}
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// TestMain_Run_EndToEnd drives a local build and then queries the
// resulting corpus through the real command surface.
func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	db := filepath.Join(t.TempDir(), "grimoire.db")

	writeFile(t, filepath.Join(dataDir, "pf2-fr", "data", "spells-srd", "common-03-sxQZ6yqTn0czJxVd.htm"), fireBoltAnnotation)
	writeFile(t, filepath.Join(dataDir, "pf2e", "packs", "spells-srd", "fire-bolt.json"), fireBoltRecord)

	m := main.NewMain()

	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(),
		[]string{"--db", db, "--data", dataDir, "build", "--local"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "corpus rebuilt: 1 entries (1 translated)")

	stdout.Reset()
	err = m.Run(context.Background(),
		[]string{"--db", db, "--no-color", "search", "trait", "de", "feu"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, `1 result(s) for "trait de feu"`)
	assert.Contains(t, out, "Trait de feu")
	assert.Contains(t, out, "(Fire Bolt)")
	assert.Contains(t, out, "[sort]")

	stdout.Reset()
	err = m.Run(context.Background(),
		[]string{"--db", db, "stats"},
		strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "corpus: 1 entries (1 translated)")
	assert.Contains(t, stdout.String(), "sort")
}
