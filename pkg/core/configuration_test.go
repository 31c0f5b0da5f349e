package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigurationFile(t *testing.T, dir string, name string, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func newTestManager(t *testing.T) (*ConfigurationManager, string) {
	t.Helper()

	dataDir := t.TempDir()
	saltDir := t.TempDir()
	t.Setenv("SYSTEMLINK_DATA_DIRECTORY", dataDir)
	t.Setenv("SYSTEMLINK_SALT_DIRECTORY", saltDir)
	t.Setenv("SYSTEMLINK_API_URI", "")
	t.Setenv("SYSTEMLINK_API_KEY", "")

	return NewConfigurationManager(), dataDir
}

func TestGetConfigurationByID(t *testing.T) {
	manager, dataDir := newTestManager(t)
	writeConfigurationFile(t, filepath.Join(dataDir, "HttpConfigurations"), "server.json",
		`{"Id": "my_server", "Uri": "https://systemlink.example.com/", "ApiKey": "abc123"}`)

	config, err := manager.GetConfiguration("MY_SERVER", false)

	require.NoError(t, err)
	assert.Equal(t, "https://systemlink.example.com", config.URI)
	assert.Equal(t, "abc123", config.APIKey)
}

func TestGetConfigurationIDIsCaseInsensitive(t *testing.T) {
	manager, dataDir := newTestManager(t)
	writeConfigurationFile(t, filepath.Join(dataDir, "HttpConfigurations"), "server.json",
		`{"Id": "My_Server", "Uri": "https://systemlink.example.com"}`)

	_, err := manager.GetConfiguration("my_server", false)
	require.NoError(t, err)
}

func TestFallbackPrefersMasterConfiguration(t *testing.T) {
	manager, dataDir := newTestManager(t)
	configDir := filepath.Join(dataDir, "HttpConfigurations")
	writeConfigurationFile(t, configDir, "localhost.json",
		`{"Id": "SYSTEMLINK_LOCALHOST", "Uri": "https://localhost"}`)
	writeConfigurationFile(t, configDir, "master.json",
		`{"Id": "SYSTEMLINK_MASTER", "Uri": "https://master.example.com"}`)

	config, err := manager.GetConfiguration("", true)

	require.NoError(t, err)
	assert.Equal(t, "https://master.example.com", config.URI)
}

func TestFallbackUsesEnvironmentConfiguration(t *testing.T) {
	manager, _ := newTestManager(t)
	t.Setenv("SYSTEMLINK_API_URI", "https://hosted.example.com")
	t.Setenv("SYSTEMLINK_API_KEY", "env-key")

	config, err := manager.GetConfiguration("", true)

	require.NoError(t, err)
	assert.Equal(t, "https://hosted.example.com", config.URI)
	assert.Equal(t, "env-key", config.APIKey)
}

func TestNoConfigurationsAvailable(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.GetConfiguration("", true)
	assert.Error(t, err)
}

func TestEmptyIDWithoutFallbacksIsRejected(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.GetConfiguration("", false)
	assert.Error(t, err)
}

func TestDuplicateConfigurationIDs(t *testing.T) {
	manager, dataDir := newTestManager(t)
	configDir := filepath.Join(dataDir, "HttpConfigurations")
	writeConfigurationFile(t, configDir, "a.json",
		`{"Id": "SYSTEMLINK_MASTER", "Uri": "https://one.example.com"}`)
	writeConfigurationFile(t, configDir, "b.json",
		`{"Id": "systemlink_master", "Uri": "https://two.example.com"}`)

	_, err := manager.GetConfiguration("SYSTEMLINK_MASTER", false)
	assert.ErrorContains(t, err, "duplicate")
}

func TestMalformedConfigurationFileIsSkipped(t *testing.T) {
	manager, dataDir := newTestManager(t)
	configDir := filepath.Join(dataDir, "HttpConfigurations")
	writeConfigurationFile(t, configDir, "bad.json", `{not json`)
	writeConfigurationFile(t, configDir, "good.json",
		`{"Id": "SYSTEMLINK_MASTER", "Uri": "https://master.example.com"}`)

	config, err := manager.GetConfiguration("", true)

	require.NoError(t, err)
	assert.Equal(t, "https://master.example.com", config.URI)
}

func TestSystemWorkspaceFromGrains(t *testing.T) {
	manager, dataDir := newTestManager(t)
	writeConfigurationFile(t, filepath.Join(dataDir, "HttpConfigurations"), "master.json",
		`{"Id": "SYSTEMLINK_MASTER", "Uri": "https://master.example.com"}`)

	saltDir := os.Getenv("SYSTEMLINK_SALT_DIRECTORY")
	writeConfigurationFile(t, filepath.Join(saltDir, "conf"), "grains",
		"systemlink_workspace: workspace-1\n")

	config, err := manager.GetConfiguration("", true)

	require.NoError(t, err)
	assert.Equal(t, "workspace-1", config.Workspace)
}

func TestNewHTTPConfigurationRejectsBadScheme(t *testing.T) {
	_, err := NewHTTPConfiguration("ftp://example.com", "key")
	assert.Error(t, err)
}
