package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the task store backing and how to reach it.
type DatabaseConfig struct {
	// Driver is one of "postgres", "sqlite" or "memory".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`

	// URL is the connection string (postgres) or data source name (sqlite).
	// Unused by the memory driver.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`

	// MigrateOnStart applies pending migrations before the server starts.
	MigrateOnStart bool `mapstructure:"migrate_on_start"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"     validate:"required,min=32"`
	AdminUsername string `mapstructure:"admin_username" validate:"required"`
	AdminPassword string `mapstructure:"admin_password" validate:"required,max=72"`
}
