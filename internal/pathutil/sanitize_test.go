package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	t.Run("clean path accepted", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "output.yaml")

		// Create the file so it exists
		require.NoError(t, os.WriteFile(target, []byte("test"), 0o600))

		got, err := SanitizeOutputPath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("returns absolute path from relative", func(t *testing.T) {
		// Use a relative path that will be resolved
		got, err := SanitizeOutputPath("output.yaml")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("dot-dot components resolved", func(t *testing.T) {
		tmpDir := t.TempDir()
		got, err := SanitizeOutputPath(filepath.Join(tmpDir, "sub", "..", "models.json"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "models.json"), got)
	})

	t.Run("symlink target rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		realFile := filepath.Join(tmpDir, "real.yaml")
		linkFile := filepath.Join(tmpDir, "link.yaml")

		require.NoError(t, os.WriteFile(realFile, []byte("test"), 0o600))
		require.NoError(t, os.Symlink(realFile, linkFile))

		_, err := SanitizeOutputPath(linkFile)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})

	t.Run("new file in existing directory accepted", func(t *testing.T) {
		tmpDir := t.TempDir()
		newFile := filepath.Join(tmpDir, "newfile.yaml")

		got, err := SanitizeOutputPath(newFile)
		require.NoError(t, err)
		assert.Equal(t, newFile, got)
	})

	t.Run("regular file accepted", func(t *testing.T) {
		tmpDir := t.TempDir()
		target := filepath.Join(tmpDir, "existing.json")
		require.NoError(t, os.WriteFile(target, []byte("{}"), 0o600))

		got, err := SanitizeOutputPath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("directory accepted", func(t *testing.T) {
		tmpDir := t.TempDir()

		got, err := SanitizeOutputPath(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, tmpDir, got)
	})

	t.Run("symlink directory rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		realDir := filepath.Join(tmpDir, "realdir")
		linkDir := filepath.Join(tmpDir, "linkdir")

		require.NoError(t, os.Mkdir(realDir, 0o755))
		require.NoError(t, os.Symlink(realDir, linkDir))

		_, err := SanitizeOutputPath(linkDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}

func TestCheckOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := filepath.Join(tmpDir, "api.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte("groups: []"), 0o600))

	t.Run("new output", func(t *testing.T) {
		assert.NoError(t, CheckOverwrite(filepath.Join(tmpDir, "models.json"), manifest))
	})

	t.Run("same file", func(t *testing.T) {
		err := CheckOverwrite(manifest, manifest)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "would overwrite input")
	})

	t.Run("same file through relative path", func(t *testing.T) {
		t.Chdir(tmpDir)
		assert.Error(t, CheckOverwrite(manifest, "api.yaml"))
	})

	t.Run("missing input ignored", func(t *testing.T) {
		assert.NoError(t, CheckOverwrite(manifest, filepath.Join(tmpDir, "missing.yaml")))
	})
}
