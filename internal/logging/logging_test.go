package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNew_WritesToWriterAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := New(&buf, "warn", "")
	require.NoError(t, err)
	defer closeLog()

	logger.Info("hidden")
	logger.Warn("shown", "streak", 3)
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "streak=3")
}

func TestFileWriter_TruncatesToTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "streak.log")
	w, err := NewFileWriter(path, 100, 40)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 12; i++ {
		_, err := w.Write([]byte(strings.Repeat("x", 9) + "\n"))
		require.NoError(t, err)
	}
	_, err = w.Write([]byte("last-line\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), 100)
	require.True(t, strings.HasSuffix(string(data), "last-line\n"))
}
