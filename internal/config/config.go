package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds output paths and run settings. The scene and camera are fixed
// and not configurable.
type Config struct {
	// Outputs
	Output      string `json:"output" yaml:"output"`   // PPM path, "-" for stdout
	WebP        string `json:"webp" yaml:"webp"`       // optional lossless WebP copy
	TGA         string `json:"tga" yaml:"tga"`         // optional TGA copy
	Preview     string `json:"preview" yaml:"preview"` // optional downscaled WebP
	PreviewSize int    `json:"preview_size" yaml:"preview_size"`
	Manifest    string `json:"manifest" yaml:"manifest"`

	// Render settings
	Workers int   `json:"workers" yaml:"workers"`
	Seed    int64 `json:"seed" yaml:"seed"`

	// Logging
	LogLevel string `json:"log_level" yaml:"log_level"`
	LogFile  string `json:"log_file" yaml:"log_file"`
}

// Load reads a JSON or YAML (.yaml/.yml) config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Seed is applied only when SeedSet is true, since zero is a valid seed.
type Flags struct {
	Output      string
	WebP        string
	TGA         string
	Preview     string
	PreviewSize int
	Manifest    string
	Workers     int
	Seed        int64
	SeedSet     bool
	LogLevel    string
	LogFile     string
}

// Resolve applies CLI overrides and fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.WebP != "" {
		c.WebP = flags.WebP
	}
	if flags.TGA != "" {
		c.TGA = flags.TGA
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}
	if flags.Manifest != "" {
		c.Manifest = flags.Manifest
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.SeedSet {
		c.Seed = flags.Seed
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.LogFile != "" {
		c.LogFile = flags.LogFile
	}

	// Defaults
	if c.Output == "" {
		c.Output = "-"
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 128
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
