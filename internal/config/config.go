package config

import "fmt"

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	// ExtendedRecords selects the 5-byte fixed-object record format on save.
	ExtendedRecords bool `yaml:"extended_records"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// StudioConfig — live-edit websocket endpoint.
type StudioConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address"`
	Path          string `yaml:"path"`
	QueueSize     int    `yaml:"queue_size"`
	MapEditor     bool   `yaml:"map_editor"`

	// AllowedOrigins — browser origins допущенные кроме loopback.
	AllowedOrigins []string `yaml:"allowed_origins"`
}
