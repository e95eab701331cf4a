// Package settings loads and stores tool configuration from
// ~/.workflow/config/settings.toml, with environment variable overrides.
package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/zevwings/workflow/internal/paths"
)

// Settings holds all persisted configuration.
type Settings struct {
	GitHub GitHub `mapstructure:"github" toml:"github"`
}

// GitHub configures the release source and API authentication.
type GitHub struct {
	// Token authenticates GitHub API requests. Optional; raises rate limits.
	Token string `mapstructure:"token" toml:"token,omitempty"`
	Owner string `mapstructure:"owner" toml:"owner"`
	Repo  string `mapstructure:"repo" toml:"repo"`
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	file, err := paths.SettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadFrom(file)
}

// LoadFrom reads settings from the given file. A missing file yields
// defaults; environment variables override either way.
func LoadFrom(file string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("toml")

	v.SetDefault("github.owner", "zevwings")
	v.SetDefault("github.repo", "workflow")

	_ = v.BindEnv("github.token", "WORKFLOW_GITHUB_TOKEN", "GITHUB_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read settings %s: %w", file, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", file, err)
	}
	return &s, nil
}

// Save writes settings to the default location.
func Save(s *Settings) error {
	file, err := paths.SettingsFile()
	if err != nil {
		return err
	}
	return SaveTo(file, s)
}

// SaveTo writes settings to the given file as TOML.
func SaveTo(file string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", file, err)
	}
	return nil
}
