package earlyrepair

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFakeOracle writes a shell script that exits 0 when the file it's
// given contains exactly want, and 1 otherwise, matching the exit-code-
// only contract of §6.
func writeFakeOracle(t *testing.T, want string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oracle.sh")
	script := fmt.Sprintf("#!/bin/sh\nbody=$(cat \"$1\")\nif [ \"$body\" = %q ]; then exit 0; else exit 1; fi\n", want)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestProcessOracleAcceptsMatchingCandidate(t *testing.T) {
	oracle := NewProcessOracle(writeFakeOracle(t, "2024-11-05"))
	ok, err := oracle.Validate(context.Background(), "2024-11-05")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProcessOracleRejectsNonMatchingCandidate(t *testing.T) {
	oracle := NewProcessOracle(writeFakeOracle(t, "2024-11-05"))
	ok, err := oracle.Validate(context.Background(), "2024-99-99")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcessOracleSurfacesInvocationFailure(t *testing.T) {
	oracle := NewProcessOracle(filepath.Join(t.TempDir(), "does-not-exist"))
	ok, err := oracle.Validate(context.Background(), "anything")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsOracleFailure(err))
}

func TestProcessOracleSurfacesTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slow.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nsleep 2\nexit 0\n"), 0o755))

	oracle := NewProcessOracle(path)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok, err := oracle.Validate(ctx, "anything")
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, IsOracleFailure(err))
}

func TestReadSampleFileSplitsLinesAndKeepsBlankAsEmptyString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\n\nab\n"), 0o644))

	lines, err := ReadSampleFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "ab"}, lines)
}
