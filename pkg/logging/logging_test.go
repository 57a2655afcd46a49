package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "user-data.log")

	logger, closeLog, err := Setup(path)
	require.NoError(t, err)

	logger.Info("provisioning started")
	require.NoError(t, closeLog())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "provisioning started")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetupAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-data.log")

	logger, closeLog, err := Setup(path)
	require.NoError(t, err)
	logger.Info("first run")
	require.NoError(t, closeLog())

	logger, closeLog, err = Setup(path)
	require.NoError(t, err)
	logger.Info("second run")
	require.NoError(t, closeLog())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

func TestRelax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user-data.log")
	require.NoError(t, os.WriteFile(path, []byte("log"), 0600))

	require.NoError(t, Relax(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestRelaxMissingFile(t *testing.T) {
	err := Relax(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}
