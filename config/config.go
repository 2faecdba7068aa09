package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileName is the configuration file looked up in the working and home
// directories.
const FileName = ".revwalk.json"

// Config is the root configuration structure.
type Config struct {
	Walk    WalkConfig   `json:"walk"`
	Filters FilterConfig `json:"filters"`
	Bugfix  BugfixConfig `json:"bugfix"`
	Burst   BurstConfig  `json:"burst"`
	Output  OutputConfig `json:"output"`
}

// WalkConfig holds revision walk options.
type WalkConfig struct {
	MaxResults      int    `json:"maxResults"`      // Default: -1 (no limit)
	DefaultRevision string `json:"defaultRevision"` // Default: "HEAD"
	GitPath         string `json:"gitPath"`         // Default: "git"
	PublishEvery    int    `json:"publishEvery"`    // Default: 1000
	// LegacyTimestampOffset adds five minutes to every timestamp, matching
	// older consumers. Default: true
	LegacyTimestampOffset bool `json:"legacyTimestampOffset"`
}

// BugfixConfig holds bugfix detection configuration.
type BugfixConfig struct {
	Patterns []string `json:"patterns"` // Regex patterns matched against subjects
}

// BurstConfig holds author burst detection configuration.
type BurstConfig struct {
	WindowDays int `json:"windowDays"` // Default: 7
}

// FilterConfig holds author filtering options.
type FilterConfig struct {
	Include []string `json:"include"` // Glob patterns on author names
	Exclude []string `json:"exclude"`
}

// OutputConfig holds report defaults.
type OutputConfig struct {
	Format   string `json:"format"`   // Default: "console"
	Top      int    `json:"top"`      // Default: 0 (all)
	ShowBody bool   `json:"showBody"` // Default: false
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Walk: WalkConfig{
			MaxResults:            -1,
			DefaultRevision:       "HEAD",
			GitPath:               "git",
			PublishEvery:          1000,
			LegacyTimestampOffset: true,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Bugfix: BugfixConfig{
			Patterns: []string{
				`\bfix(ed|es)?\b`,
				`\bbug\b`,
				`\bhotfix\b`,
				`\bpatch\b`,
			},
		},
		Burst: BurstConfig{
			WindowDays: 7,
		},
		Output: OutputConfig{
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{FileName}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, FileName))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, FileName))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
