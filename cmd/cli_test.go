package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionPrintsVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestUnknownCommandFails(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestStatusRendersPersistedState(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Forum Topic Rotation")
	assert.Contains(t, stdout, "chats: 1")
	assert.Contains(t, stdout, "Helpdesk (-1003643461316)")
	assert.Contains(t, stdout, "topic 42")
	assert.Contains(t, stdout, "message 611")
	assert.Contains(t, stdout, `"VPN reset?"`)
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))
	require.NoError(t, writeStateFixture(home))

	stdout, _, err := executeCLI(t, home, "status", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var statuses []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &statuses))
	require.Len(t, statuses, 1)
	assert.EqualValues(t, 42, statuses[0]["general_topic_id"])
	assert.EqualValues(t, 611, statuses[0]["last_processed_marker"])
	assert.Equal(t, true, statuses[0]["tracked"])
}

func TestStatusWithoutStateShowsDefaults(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))

	stdout, _, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "topic 1")
	assert.Contains(t, stdout, "not processed yet")
}

func TestStatusWarnsOnCorruptState(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".config", "topicd", "forum_state.json"), []byte("{not json"), 0o600))

	stdout, stderr, err := executeCLI(t, home, "status")
	require.NoError(t, err)
	assert.Contains(t, stderr, "warning:")
	assert.Contains(t, stdout, "Helpdesk")
}

func TestRunFailsWithoutMonitoredChats(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "run", "--once")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no monitored chats configured")
	assert.Contains(t, err.Error(), "telegram.api_id is required")
}

func TestRunRejectsNonPositiveInterval(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))

	_, _, err := executeCLI(t, home, "run", "--interval", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval must be positive")
}

func TestCheckRequiresChatFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "chat" not set`)
}

func TestCheckRejectsUnmonitoredChat(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))

	_, _, err := executeCLI(t, home, "check", "--chat=-1009999999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat is not monitored: -1009999999999")
}

func TestRotateRequiresName(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))

	_, _, err := executeCLI(t, home, "rotate", "--chat=-1003643461316")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "name" not set`)
}

func TestAuthSetRequiresAPIHashFlag(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "auth", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "api-hash" not set`)
}

func TestAuthSetStoresAPIHash(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home))

	stdout, _, err := executeCLI(t, home, "auth", "set", "--api-hash", "0123456789abcdef")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored Telegram api hash at topicd/telegram/api_hash")
}

func TestAuthLoginRequiresPhone(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "auth", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "phone" not set`)
}

func TestAuthStatusRequiresTelegramSettings(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "auth", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.api_id is required")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("TOPICD_CONFIG", "")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfigFixture(home string) error {
	configDir := filepath.Join(home, ".config", "topicd")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := `version = 1
interval = "30s"

[telegram]
api_id = 12345

[[chats]]
id = -1003643461316
name = "Helpdesk"
exempt_topics = [1]
`

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}

func writeStateFixture(home string) error {
	state := `{
  "-1003643461316": {
    "general_topic_id": 42,
    "last_processed_marker": 611,
    "general_created_at": "2026-03-01T10:00:00Z",
    "last_rotated_at": "2026-03-01T10:00:00Z",
    "rotations": [
      {"topic_id": 30, "subject": "VPN reset?", "new_general_id": 42, "rotated_at": "2026-03-01T10:00:00Z"}
    ]
  }
}
`

	return os.WriteFile(filepath.Join(home, ".config", "topicd", "forum_state.json"), []byte(state), 0o600)
}
