package summary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "provision-summary.txt")

	in := Summary{
		RunID:       "0c7f5e7a-9bfb-4d48-a95e-2f2f6f4bb6be",
		CompletedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		InstanceID:  "i-123",
		Status:      "degraded",
		FailedSteps: []string{"enable-service", "verify-content"},
	}
	require.NoError(t, Write(path, in))

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, in.RunID, out.RunID)
	assert.Equal(t, in.CompletedAt, out.CompletedAt)
	assert.Equal(t, in.InstanceID, out.InstanceID)
	assert.Equal(t, "degraded", out.Status)
	assert.Equal(t, []string{"enable-service", "verify-content"}, out.FailedSteps)
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	require.NoError(t, os.WriteFile(path, []byte("STATUS=stale\n"), 0644))

	require.NoError(t, Write(path, Summary{Status: "ok"}))

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Status)
}

func TestReadSkipsCommentsAndQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	content := `# a comment

RUN_ID="quoted-id"
STATUS='ok'
MALFORMED LINE
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "quoted-id", out.RunID)
	assert.Equal(t, "ok", out.Status)
	assert.Empty(t, out.FailedSteps)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
