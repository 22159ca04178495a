package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJanitor_Sweep(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	old := time.Now().Add(-2 * time.Hour)

	write := func(name string, mtime time.Time) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
		require.NoError(t, os.Chtimes(p, mtime, mtime))
		return p
	}
	stale := write(TempPrefix+"stale.png", old)
	fresh := write(TempPrefix+"fresh.png", time.Now())
	foreign := write("keep-me.png", old)

	j, err := NewJanitor(dir, time.Hour, "@every 1h", zap.NewNop())
	require.NoError(t, err)

	removed, err := j.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, foreign)
}

func TestJanitor_MissingDir(t *testing.T) {
	t.Parallel()

	j, err := NewJanitor(filepath.Join(t.TempDir(), "nope"), time.Minute, "@every 1m", zap.NewNop())
	require.NoError(t, err)

	removed, err := j.Sweep()
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestJanitor_BadSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewJanitor(t.TempDir(), time.Minute, "every now and then", zap.NewNop())
	assert.Error(t, err)
}

func TestJanitor_StartStop(t *testing.T) {
	t.Parallel()

	j, err := NewJanitor(t.TempDir(), time.Minute, "@every 1h", zap.NewNop())
	require.NoError(t, err)
	j.Start()
	j.Stop()
}
