package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// findConfigFile finds the config file to use.
// Priority: explicit path > datavisual.yaml > datavisual.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"datavisual.yaml", "datavisual.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env > config file >
// defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"schemas_dir":  DefaultSchemasDir,
		"state_path":   DefaultStateFile,
		"output":       DefaultOutput,
		"verbose":      false,
		"server.port":  DefaultPort,
		"server.watch": true,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: DATAVISUAL_SCHEMAS_DIR -> schemas_dir,
	// DATAVISUAL_SERVER__PORT -> server.port
	if err := k.Load(env.Provider("DATAVISUAL_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "DATAVISUAL_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")

			// Server flags map onto the nested server section.
			switch key {
			case "port":
				return "server.port", posflag.FlagVal(flags, f)
			case "watch":
				return "server.watch", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Resolve relative paths against the config file's directory so a
	// project can be served from anywhere.
	if configFileUsed != "" {
		base := filepath.Dir(configFileUsed)
		cfg.SchemasDir = resolvePathRelativeTo(cfg.SchemasDir, base)
		if cfg.StatePath != ":memory:" {
			cfg.StatePath = resolvePathRelativeTo(cfg.StatePath, base)
		}
	}

	currentConfig = &cfg
	return &cfg, nil
}

// GetCurrentConfig returns the most recently loaded configuration, or a
// default config when nothing has been loaded yet.
func GetCurrentConfig() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	return &Config{
		SchemasDir:   DefaultSchemasDir,
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
	}
}

// resolvePathRelativeTo resolves a path against baseDir unless it is
// empty or already absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// GetConfigFileUsed returns the path of the config file in effect, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger. Shared
// with the commands package to avoid an import cycle with cli.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from a command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
