// Package config holds the configuration record for trash-code and loads it
// from defaults, an optional YAML file and TRASHCODE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up in the working directory when no
	// explicit path is given. Its absence is not an error.
	DefaultConfigFile = "trash-code.yaml"

	// EnvPrefix prefixes every environment override, e.g.
	// TRASHCODE_OBFUSCATION_STRINGS=false.
	EnvPrefix = "TRASHCODE"

	// DefaultOutputSuffix is inserted before the input extension to build
	// the default output path (app.js -> app.trash.js).
	DefaultOutputSuffix = ".trash"
)

// ObfuscationConfig toggles the individual passes of the pipeline.
type ObfuscationConfig struct {
	Variables        bool `yaml:"variables" mapstructure:"variables"`                   // Identifier Rename Pass
	DeadCode         bool `yaml:"dead_code" mapstructure:"dead_code"`                   // Dead Code Injection Pass
	Strings          bool `yaml:"strings" mapstructure:"strings"`                       // String Literal Encode Pass
	Minify           bool `yaml:"minify" mapstructure:"minify"`                         // Whitespace/Comment Strip Pass
	RandomSpaces     bool `yaml:"random_spaces" mapstructure:"random_spaces"`           // Reserved, currently a no-op
	RandomLineBreaks bool `yaml:"random_line_breaks" mapstructure:"random_line_breaks"` // Line Break Randomization Pass
	SwapKeywords     bool `yaml:"swap_keywords" mapstructure:"swap_keywords"`           // var/let swap during renaming
}

// LogConfig controls the slog destination and the lumberjack rotation
// settings used when Filename is set.
type LogConfig struct {
	Filename   string `yaml:"filename" mapstructure:"filename"`
	Level      string `yaml:"level" mapstructure:"level"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

// Config holds all configuration settings for the obfuscator.
type Config struct {
	Silent       bool   `yaml:"silent" mapstructure:"silent"`               // Suppress informational messages
	DebugMode    bool   `yaml:"debug_mode" mapstructure:"debug_mode"`       // Force debug logging
	Verify       bool   `yaml:"verify" mapstructure:"verify"`               // Syntax-check input and output
	Jobs         int    `yaml:"jobs" mapstructure:"jobs"`                   // Files processed concurrently
	OutputSuffix string `yaml:"output_suffix" mapstructure:"output_suffix"` // Marker for default output paths

	Obfuscation ObfuscationConfig `yaml:"obfuscation" mapstructure:"obfuscation"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// Default values, keyed the way viper addresses nested keys.
var defaults = map[string]interface{}{
	"silent":        false,
	"debug_mode":    false,
	"verify":        false,
	"jobs":          1,
	"output_suffix": DefaultOutputSuffix,

	"obfuscation.variables":          true,
	"obfuscation.dead_code":          true,
	"obfuscation.strings":            true,
	"obfuscation.minify":             true,
	"obfuscation.random_spaces":      true,
	"obfuscation.random_line_breaks": true,
	"obfuscation.swap_keywords":      true,

	"log.filename":    "",
	"log.level":       "info",
	"log.max_size":    10,
	"log.max_backups": 3,
	"log.max_age":     28,
	"log.compress":    true,
}

var (
	// Testing controls whether output is suppressed for testing purposes
	Testing bool
)

// PrintInfo prints user-facing status text unless Testing is set.
func PrintInfo(format string, args ...interface{}) {
	if !Testing {
		fmt.Printf(format, args...)
	}
}

// DefaultObfuscation returns the pass toggles with every pass enabled.
func DefaultObfuscation() ObfuscationConfig {
	return ObfuscationConfig{
		Variables:        true,
		DeadCode:         true,
		Strings:          true,
		Minify:           true,
		RandomSpaces:     true,
		RandomLineBreaks: true,
		SwapKeywords:     true,
	}
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() *Config {
	return &Config{
		Jobs:         1,
		OutputSuffix: DefaultOutputSuffix,
		Obfuscation:  DefaultObfuscation(),
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
	}
}

// newViper returns a viper instance carrying the defaults and the env binding.
func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads configuration from defaults, the YAML file at configPath
// (or DefaultConfigFile when empty) and the environment.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithOverrides(configPath, nil)
}

// LoadConfigWithOverrides behaves like LoadConfig and then applies overrides,
// keyed like the YAML file ("obfuscation.strings", "jobs", ...). Overrides
// win over every other source.
func LoadConfigWithOverrides(configPath string, overrides map[string]interface{}) (*Config, error) {
	v := newViper()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	} else if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
	} else {
		return nil, fmt.Errorf("error checking config file %s: %w", configPath, err)
	}

	for key, value := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		if _, known := defaults[key]; !known {
			return nil, fmt.Errorf("unknown configuration key %q", key)
		}
		v.Set(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the CLI cannot act on.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if strings.ContainsAny(c.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix must not contain path separators: %q", c.OutputSuffix)
	}
	return nil
}

// SaveConfig writes the default configuration to configPath as YAML.
func SaveConfig(configPath string) error {
	yamlData, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshalling default config: %w", err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory for config file %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", configPath, err)
	}
	PrintInfo("Info: Saved default configuration to %s\n", configPath)
	return nil
}
