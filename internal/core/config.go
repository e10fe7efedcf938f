package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/drapaimern/taskboard/pkg/models"
)

// configName is the config file basename; Viper resolves the extension.
const configName = ".taskboard"

// ConfigurationManager defines the interface for loading and persisting
// the global configuration file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	SaveGlobalConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	// basePath is the directory where .taskboard.yaml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads the
// configuration file relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func defaultGlobalConfig(basePath string) *models.GlobalConfig {
	return &models.GlobalConfig{
		DatabasePath:    filepath.Join(basePath, "tasks.db"),
		DefaultPriority: models.DefaultPriority,
		DefaultStatus:   models.StatusBacklog,
		EventLogEnabled: true,
	}
}

// LoadGlobalConfig reads .taskboard.yaml from the base path using Viper.
// If the file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := defaultGlobalConfig(cm.basePath)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("database.path", cfg.DatabasePath)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("defaults.status", string(cfg.DefaultStatus))
	v.SetDefault("event_log.enabled", cfg.EventLogEnabled)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s.yaml: %w", configName, err)
	}

	cfg.DatabasePath = v.GetString("database.path")
	cfg.EventLogEnabled = v.GetBool("event_log.enabled")

	priority, err := models.ParsePriority(v.GetString("defaults.priority"))
	if err != nil {
		return nil, fmt.Errorf("config defaults.priority: %w", err)
	}
	cfg.DefaultPriority = priority

	status, err := models.ParseStatus(v.GetString("defaults.status"))
	if err != nil {
		return nil, fmt.Errorf("config defaults.status: %w", err)
	}
	cfg.DefaultStatus = status

	return cfg, nil
}

// configFile is the on-disk YAML layout written by SaveGlobalConfig,
// mirroring the nested keys Viper reads back.
type configFile struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Defaults struct {
		Priority string `yaml:"priority"`
		Status   string `yaml:"status"`
	} `yaml:"defaults"`
	EventLog struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"event_log"`
}

// SaveGlobalConfig writes the configuration to .taskboard.yaml in the base
// path, overwriting any existing file.
func (cm *viperConfigManager) SaveGlobalConfig(cfg *models.GlobalConfig) error {
	var out configFile
	out.Database.Path = cfg.DatabasePath
	out.Defaults.Priority = string(cfg.DefaultPriority)
	out.Defaults.Status = string(cfg.DefaultStatus)
	out.EventLog.Enabled = cfg.EventLogEnabled

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	path := filepath.Join(cm.basePath, configName+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
