package pid_test

import (
	"os"
	"strconv"
	"testing"

	"codeberg.org/mutker/vitalstats/internal/errors"
	"codeberg.org/mutker/vitalstats/internal/pid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRemove(t *testing.T) {
	f := pid.New(t.TempDir(), "")

	require.NoError(t, f.Write())
	content, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(content))

	// Rewriting our own PID file is allowed.
	require.NoError(t, f.Write())

	require.NoError(t, f.Remove())
	_, err = os.Stat(f.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, f.Remove())
}

func TestWriteReplacesStaleFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not a pid"},
		{"empty", ""},
		{"negative", "-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := pid.New(t.TempDir(), "test.pid")
			require.NoError(t, os.WriteFile(f.Path(), []byte(tt.content), 0o600))

			require.NoError(t, f.Write())
		})
	}
}

func TestWriteDetectsRunningInstance(t *testing.T) {
	f := pid.New(t.TempDir(), "test.pid")
	// The parent of the test binary is alive for the duration of the test.
	require.NoError(t, os.WriteFile(f.Path(), []byte(strconv.Itoa(os.Getppid())), 0o600))

	err := f.Write()
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrAlreadyRunning))
}
