package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AccessLog is the file every inbound request line is appended to.
	AccessLog string `mapstructure:"access_log" validate:"required"`
	// DocsServerURL is advertised as the server entry of the OpenAPI document.
	DocsServerURL string `mapstructure:"docs_server_url" validate:"required,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required"`
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres pgx sqlite3"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	SlowQueryMS  int    `mapstructure:"slow_query_ms"  validate:"gte=0"`
}
