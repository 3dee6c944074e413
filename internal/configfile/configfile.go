// Package configfile reads and writes the per-data-dir metadata file.
// Unlike the viper-backed settings in internal/config, this file travels
// with the .arete directory and records where that directory's database
// lives.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const ConfigFileName = "metadata.json"

type Config struct {
	Database string `json:"database"`
}

func DefaultConfig() *Config {
	return &Config{
		Database: "arete.db",
	}
}

func ConfigPath(areteDir string) string {
	return filepath.Join(areteDir, ConfigFileName)
}

// Load reads the metadata file from the given .arete directory. A
// missing file is not an error: it returns (nil, nil) and callers fall
// back to DefaultConfig.
func Load(areteDir string) (*Config, error) {
	configPath := ConfigPath(areteDir)

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled path from config
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Save(areteDir string) error {
	configPath := ConfigPath(areteDir)

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}

	return nil
}

func (c *Config) DatabasePath(areteDir string) string {
	if c.Database == "" {
		return filepath.Join(areteDir, "arete.db")
	}
	return filepath.Join(areteDir, c.Database)
}
