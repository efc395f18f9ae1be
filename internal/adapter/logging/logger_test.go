package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZapLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	logger, err := NewZapLogger("warn", path)
	require.NoError(t, err)

	logger.Info("dropped", "k", "v")
	logger.Warn("result conflict", "id", 7)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "result conflict", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, float64(7), entry["id"])
	assert.Contains(t, entry, "time")
}

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewZapLogger("loud", "")
	assert.Error(t, err)
}
