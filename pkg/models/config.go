package models

// GlobalConfig holds system-wide settings read from .taskboard.yaml via Viper.
type GlobalConfig struct {
	DatabasePath    string   `yaml:"database_path" mapstructure:"database_path"`
	DefaultPriority Priority `yaml:"default_priority" mapstructure:"default_priority"`
	DefaultStatus   Status   `yaml:"default_status" mapstructure:"default_status"`
	EventLogEnabled bool     `yaml:"event_log_enabled" mapstructure:"event_log_enabled"`
}
