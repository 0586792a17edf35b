package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(file string, captured time.Time) Entry {
	return Entry{
		File:       file,
		CapturedAt: captured,
		Sessions:   2,
		Samples:    120,
	}
}

func TestReadFileNotExist(t *testing.T) {
	m, err := ReadFile(filepath.Join(t.TempDir(), "captures.json"))
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
}

func TestReadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captures.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captures.json")

	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	m := &Manifest{Entries: []Entry{entry("co2-2026-08-29.html", now)}}
	require.NoError(t, m.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, "co2-2026-08-29.html", got.Entries[0].File)
	assert.Equal(t, 2, got.Entries[0].Sessions)
	assert.Equal(t, 120, got.Entries[0].Samples)
}

func TestUpsert(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	m := &Manifest{}

	m.Upsert(entry("a.html", now))
	m.Upsert(entry("b.html", now.Add(time.Hour)))

	require.Len(t, m.Entries, 2)
	assert.Equal(t, "b.html", m.Entries[0].File, "newest first")

	// Replacing an existing file keeps the list length.
	replaced := entry("a.html", now.Add(2*time.Hour))
	replaced.Samples = 999
	m.Upsert(replaced)

	require.Len(t, m.Entries, 2)
	assert.Equal(t, "a.html", m.Entries[0].File)
	assert.Equal(t, 999, m.Entries[0].Samples)
}

func TestWriteFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "captures.json")
	require.NoError(t, (&Manifest{}).WriteFile(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
