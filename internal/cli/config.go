package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "KANBAN"

	cfgKeyBoardDir  = "board_dir"
	cfgKeyAuthor    = "author"
	cfgKeyLock      = "lock"
	cfgKeyAdapters  = "adapters"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"

	defaultAuthor = "human"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# kanban CLI configuration

# Board directory (optional; overridable by --board-dir)
# board_dir:

# Author recorded on notes and blockers when --author is not given
author: human

# Take board.lock around writes to board.yaml
lock: false

# Enrichment adapters used by list --enrich and show --enrich
adapters:
  - ralph
  - specops
  - specArtifact

# debug, info, warn or error
log_level: warn

# text, json or logfmt
log_format: text
`

// loadConfig reads config.yaml from configDir using Viper, creating the
// directory and a default file on first run. KANBAN_* environment
// variables override file values. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyAuthor, defaultAuthor)
	v.SetDefault(cfgKeyLock, false)
	v.SetDefault(cfgKeyAdapters, []string{})
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, "text")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile writes defaultConfigYAML unless config.yaml
// already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
