// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads GT Pilot settings from defaults, yaml files, the
// environment and cobra flags, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Language string `mapstructure:"language" yaml:"language"`
	Gemini   struct {
		APIKey         string `mapstructure:"api_key" yaml:"api_key,omitempty"`
		Model          string `mapstructure:"model" yaml:"model"`
		Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"gemini" yaml:"gemini"`
	Log struct {
		File string `mapstructure:"file" yaml:"file,omitempty"`
	} `mapstructure:"log" yaml:"log"`
}

const (
	DefaultModel    = "gemini-2.5-pro"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultTimeout  = 60
)

// Defaults returns the built-in defaults keyed by their dotted viper names.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":          "sqlite",
		"database.dsn":           defaultDSN(),
		"language":               "en",
		"gemini.api_key":         "",
		"gemini.model":           DefaultModel,
		"gemini.endpoint":        DefaultEndpoint,
		"gemini.timeout_seconds": DefaultTimeout,
		"log.file":               "",
	}
}

// defaultDSN places the sqlite file next to the user config, falling back
// to the working directory.
func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "./gtpilot.db"
	}
	return filepath.Join(dir, "gtpilot", "gtpilot.db")
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "GTPilot")
		default:
			configDir = "/etc/gtpilot"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "gtpilot")
	}

	return filepath.Join(configDir, "gtpilot.yaml"), nil
}

// LoadConfig builds a T from defaults, the first gtpilot.yaml found (or
// configFile when set), GTPILOT_* environment variables and the flags of cmd.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("gtpilot")
	v.SetConfigType("yaml")

	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}

	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, a broken one is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("gtpilot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
		if err := v.BindPFlags(cmd.InheritedFlags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// WriteConfigFile writes c as yaml to the user (or system) config path.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may hold the Gemini key.
	return os.WriteFile(path, data, 0600)
}

// LoadDotEnv loads the given .env files (default ".env") without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ResolveCredential returns the Gemini credential: the configured value
// first, then API_KEY, then GEMINI_API_KEY.
func ResolveCredential(c Config) string {
	if k := strings.TrimSpace(c.Gemini.APIKey); k != "" {
		return k
	}
	for _, name := range []string{"API_KEY", "GEMINI_API_KEY"} {
		if k := strings.TrimSpace(os.Getenv(name)); k != "" {
			return k
		}
	}
	return ""
}
