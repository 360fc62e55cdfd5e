// Package config loads dashboard configuration with the precedence
// flags > environment > config file > defaults.
package config

// Default configuration values.
const (
	DefaultSchemasDir = "schemas"
	DefaultStateFile  = ".datavisual/state.db"
	DefaultOutput     = "table"
	DefaultPort       = 8765
)

// ServerConfig holds settings for the dashboard HTTP server.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// LayoutConfig holds default layout settings applied when a request does
// not name its own.
type LayoutConfig struct {
	Strategy  string `koanf:"strategy"`
	Direction string `koanf:"direction"`
}

// Config holds all configuration options.
type Config struct {
	SchemasDir   string `koanf:"schemas_dir"`
	StatePath    string `koanf:"state_path"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	// BackendURL selects a remote lineage backend; empty means the
	// embedded store.
	BackendURL string `koanf:"backend_url"`

	Server *ServerConfig `koanf:"server"`
	Layout *LayoutConfig `koanf:"layout"`
}

// GetServerConfig returns the server config with defaults applied for
// any unset values.
func (c *Config) GetServerConfig() *ServerConfig {
	if c.Server == nil {
		return &ServerConfig{Port: DefaultPort, Watch: true}
	}
	srv := c.Server
	if srv.Port == 0 {
		srv.Port = DefaultPort
	}
	return srv
}

// GetLayoutConfig returns the layout config, never nil.
func (c *Config) GetLayoutConfig() *LayoutConfig {
	if c.Layout == nil {
		return &LayoutConfig{}
	}
	return c.Layout
}
