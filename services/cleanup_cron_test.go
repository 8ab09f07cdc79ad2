package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepDirRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()

	stale := filepath.Join(dir, "old-banner.png")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh := filepath.Join(dir, "new-upload.png")
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))

	sweepDir(dir, time.Hour)

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestSweepDirMissingDirectory(t *testing.T) {
	// Nothing to sweep is not an error condition
	sweepDir(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour)
}
