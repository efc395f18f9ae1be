package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := fmt.Sprintf("jwt_secret_key: test-secret\ndb_dsn: %s\nlog_level: error\n", filepath.Join(dir, "db.sqlite3"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "resultsapi dev\n", out)
}

func TestUserCommands(t *testing.T) {
	config := writeTestConfig(t)

	out, err := run(t, "", "--config", config, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No users found")

	out, err = run(t, "password123\npassword123\n", "--config", config, "users", "add", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "User 'alice@example.com' created successfully")

	_, err = run(t, "password123\npassword123\n", "--config", config, "users", "add", "alice@example.com")
	assert.ErrorContains(t, err, "user already exists")

	_, err = run(t, "short\nshort\n", "--config", config, "users", "add", "carol@example.com")
	assert.ErrorContains(t, err, "at least 8 characters")

	_, err = run(t, "password123\npassword321\n", "--config", config, "users", "add", "carol@example.com")
	assert.ErrorContains(t, err, "passwords do not match")

	_, err = run(t, "password123\npassword123\n", "--config", config, "users", "add", "admin@example.com", "--admin")
	require.NoError(t, err)

	out, err = run(t, "", "--config", config, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "admin@example.com")
	assert.NotContains(t, out, "carol@example.com")
	assert.Contains(t, out, "ROLE_USER,ROLE_ADMIN")

	out, err = run(t, "", "--config", config, "users", "set-admin", "alice@example.com", "--admin=true")
	require.NoError(t, err)
	assert.Contains(t, out, "ROLE_USER, ROLE_ADMIN")

	out, err = run(t, "", "--config", config, "users", "set-admin", "alice@example.com", "--admin=false")
	require.NoError(t, err)
	assert.NotContains(t, out, "ROLE_ADMIN")

	out, err = run(t, "newpassword1\nnewpassword1\n", "--config", config, "users", "update-password", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated")

	out, err = run(t, "no\n", "--config", config, "users", "delete", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	out, err = run(t, "yes\n", "--config", config, "users", "delete", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted successfully")

	out, err = run(t, "", "--config", config, "users", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "alice@example.com")
}
