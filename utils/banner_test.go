package utils

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWelcomeBanner(t *testing.T) {
	dir := t.TempDir()

	path, err := GenerateWelcomeBanner("Ada", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 630, img.Bounds().Dy())
}

func TestGenerateWelcomeBannerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "banners")

	path, err := GenerateWelcomeBanner("Bisi", dir)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGenerateWelcomeBannerUniquePaths(t *testing.T) {
	dir := t.TempDir()

	first, err := GenerateWelcomeBanner("Ada", dir)
	require.NoError(t, err)
	second, err := GenerateWelcomeBanner("Ada", dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
