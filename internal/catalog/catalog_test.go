package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	entries := Default()
	require.Len(t, entries, 8)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
		assert.Greater(t, e.Size, 0.0, e.Name)
		assert.Regexp(t, `^assets/2k_.*\.jpg$`, e.Texture)
		assert.Empty(t, e.Moons)
	}
	assert.Equal(t, []string{"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune"}, names)
	assert.InDelta(t, 1.0, entries[2].Size, 1e-12, "earth is the unit")
	assert.InDelta(t, 10.973, entries[4].Size, 1e-3)
}

const sample = `
bodies:
  - name: earth
    size: 1
    texture: assets/2k_earth_daymap.jpg
    moons:
      - name: luna
        size: 0.27
        distance: 6.033
        texture: assets/2k_moon.jpg
        orbit: {radius: 1, theta: 1, phi: 1}
  - name: earth
    size: 1
    texture: assets/2k_earth_daymap.jpg
`

func TestParse(t *testing.T) {
	entries, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, entries, 2, "duplicate entries are kept")

	require.Len(t, entries[0].Moons, 1)
	luna := entries[0].Moons[0]
	assert.Equal(t, "luna", luna.Name)
	assert.Equal(t, 0.27, luna.Size)
	assert.Equal(t, 6.033, luna.Distance)
	assert.Equal(t, Orbit{Radius: 1, Theta: 1, Phi: 1}, luna.Orbit)
	assert.Equal(t, 3, Count(entries))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("bodies: []"))
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = Parse([]byte("bodies:\n  - size: 1\n"))
	assert.ErrorContains(t, err, "missing name")

	_, err = Parse([]byte("bodies: [unclosed"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, Save(path, Default()))

	entries, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), entries)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	updates, err := Watch(ctx, path)
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
	// Invalid edits are skipped
	require.NoError(t, os.WriteFile(path, []byte("bodies: []"), 0644))
	time.Sleep(2 * watchDebounce)

	select {
	case got := <-updates:
		t.Fatalf("unexpected update %v", got)
	default:
	}

	require.NoError(t, Save(path, Default()))

	select {
	case got := <-updates:
		assert.Len(t, got, 8)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after catalog change")
	}

	cancel()
	select {
	case _, ok := <-updates:
		assert.False(t, ok, "channel closed after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
