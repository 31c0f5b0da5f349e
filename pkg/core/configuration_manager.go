package core

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// MasterConfigurationID is the ID of the server configuration
	// written on systems registered with SystemLink Client.
	MasterConfigurationID = "SYSTEMLINK_MASTER"

	// LocalhostConfigurationID is the ID of the server configuration
	// written on the SystemLink Server itself.
	LocalhostConfigurationID = "SYSTEMLINK_LOCALHOST"

	grainsWorkspaceKey = "systemlink_workspace"
)

// configurationFile is the on-disk shape of one HTTP configuration.
type configurationFile struct {
	ID       string `json:"Id"`
	URI      string `json:"Uri"`
	APIKey   string `json:"ApiKey"`
	CertPath string `json:"CertPath"`
}

// ConfigurationManager discovers HTTP configurations installed on the
// local system.
type ConfigurationManager struct {
	configurationsDir string
	certificatesDir   string
	grainsPath        string

	configs map[string]*HTTPConfiguration
}

// NewConfigurationManager creates a manager that reads from the
// standard Skyline data directories.
func NewConfigurationManager() *ConfigurationManager {
	dataDir := applicationDataDirectory()
	return &ConfigurationManager{
		configurationsDir: filepath.Join(dataDir, "HttpConfigurations"),
		certificatesDir:   filepath.Join(dataDir, "Certificates"),
		grainsPath:        filepath.Join(saltDataDirectory(), "conf", "grains"),
	}
}

// GetConfiguration returns the configuration with the given ID. When id
// is empty and enableFallbacks is set, the master, localhost, and
// environment-variable configurations are tried in that order.
func (m *ConfigurationManager) GetConfiguration(id string, enableFallbacks bool) (*HTTPConfiguration, error) {
	if id == "" {
		if !enableFallbacks {
			return nil, errors.New("a configuration id is required when fallbacks are disabled")
		}
		config, err := m.fallback()
		if err != nil {
			return nil, err
		}
		return config, nil
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	if config, ok := m.configs[strings.ToUpper(id)]; ok {
		return config, nil
	}
	if enableFallbacks {
		config, err := m.fallback()
		if err != nil {
			return nil, errors.Errorf("configuration %q was not found and no fallback configurations are available", id)
		}
		return config, nil
	}

	return nil, errors.Errorf("configuration %q was not found", id)
}

func (m *ConfigurationManager) fallback() (*HTTPConfiguration, error) {
	if err := m.load(); err != nil {
		return nil, err
	}

	if config, ok := m.configs[MasterConfigurationID]; ok {
		return config, nil
	}
	if config, ok := m.configs[LocalhostConfigurationID]; ok {
		return config, nil
	}
	if config, err := NewEnvHTTPConfiguration(); err == nil {
		return config, nil
	}

	return nil, errors.New("no SystemLink configurations available")
}

func (m *ConfigurationManager) load() error {
	if m.configs != nil {
		return nil
	}

	configs := map[string]*HTTPConfiguration{}
	entries, err := os.ReadDir(m.configurationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			m.configs = configs
			return nil
		}
		return errors.Wrap(err, "read http configurations directory")
	}

	workspace := m.readSystemWorkspace()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		file, err := m.readConfigurationFile(filepath.Join(m.configurationsDir, entry.Name()))
		if err != nil {
			// An unreadable or badly formatted file is skipped.
			continue
		}
		if file.ID == "" || file.URI == "" {
			continue
		}

		id := strings.ToUpper(file.ID)
		if _, ok := configs[id]; ok {
			return errors.Errorf("duplicate configuration id %q", id)
		}

		certPath := ""
		if file.CertPath != "" {
			candidate := filepath.Join(m.certificatesDir, file.CertPath)
			if _, err := os.Stat(candidate); err == nil {
				certPath = candidate
			}
		}

		configs[id] = &HTTPConfiguration{
			URI:       strings.TrimRight(file.URI, "/"),
			APIKey:    file.APIKey,
			CertPath:  certPath,
			Workspace: workspace,
		}
	}

	m.configs = configs
	return nil
}

func (m *ConfigurationManager) readConfigurationFile(path string) (*configurationFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read configuration file")
	}

	file := configurationFile{}
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "parse configuration file")
	}

	return &file, nil
}

// readSystemWorkspace reads the workspace of the connected system from
// the salt grains file, when present.
func (m *ConfigurationManager) readSystemWorkspace() string {
	raw, err := os.ReadFile(m.grainsPath)
	if err != nil {
		return ""
	}

	grains := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &grains); err != nil {
		return ""
	}

	workspace, _ := grains[grainsWorkspaceKey].(string)
	return workspace
}
