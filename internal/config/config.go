package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/ignorelib/pkg/ignore"
)

// CurrentVersion is the configuration schema version.
const CurrentVersion = 1

// Project configuration file names, in lookup order.
const (
	ProjectConfigYAML = ".ignorelib.yaml"
	ProjectConfigYML  = ".ignorelib.yml"
)

// Config represents the complete ignorelib configuration.
type Config struct {
	Version  int          `yaml:"version" json:"version"`
	Ignore   IgnoreConfig `yaml:"ignore" json:"ignore"`
	Walk     WalkConfig   `yaml:"walk" json:"walk"`
	Output   OutputConfig `yaml:"output" json:"output"`
	LogLevel string       `yaml:"log_level" json:"log_level"`
}

// IgnoreConfig configures how ignore rules are collected.
type IgnoreConfig struct {
	// FileName is the per-directory ignore file (default: .gitignore).
	FileName string `yaml:"file_name" json:"file_name"`

	// IgnoreCase makes every pattern case-insensitive.
	IgnoreCase bool `yaml:"ignore_case" json:"ignore_case"`

	// GlobalFiles are extra ignore files, highest precedence first.
	// Relative paths are resolved against the root; ~ is expanded.
	GlobalFiles []string `yaml:"global_files" json:"global_files"`

	// GlobalPatterns are literal patterns with the lowest precedence.
	GlobalPatterns []string `yaml:"global_patterns" json:"global_patterns"`

	// PatternCacheSize bounds the compiled pattern cache (0 = library default).
	PatternCacheSize int `yaml:"pattern_cache_size" json:"pattern_cache_size"`
}

// WalkConfig configures tree walking and file scanning.
type WalkConfig struct {
	SkipEmptyDirs  bool     `yaml:"skip_empty_dirs" json:"skip_empty_dirs"`
	FollowSymlinks bool     `yaml:"follow_symlinks" json:"follow_symlinks"`
	Include        []string `yaml:"include" json:"include"`
	Exclude        []string `yaml:"exclude" json:"exclude"`
	MaxFileSize    int64    `yaml:"max_file_size" json:"max_file_size"`
	SkipBinary     bool     `yaml:"skip_binary" json:"skip_binary"`
}

// OutputConfig configures CLI rendering.
type OutputConfig struct {
	// Format is text, json or yaml.
	Format string `yaml:"format" json:"format"`
	// Color is auto, always or never.
	Color string `yaml:"color" json:"color"`
}

// defaultGlobalPatterns are applied unless a config file replaces them.
var defaultGlobalPatterns = []string{
	".git/",
}

// NewConfig creates a new Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Ignore: IgnoreConfig{
			FileName:       ignore.DefaultIgnoreFileName,
			GlobalFiles:    []string{},
			GlobalPatterns: append([]string(nil), defaultGlobalPatterns...),
		},
		Walk: WalkConfig{
			Include: []string{},
			Exclude: []string{},
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		LogLevel: "info",
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/ignorelib/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/ignorelib/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ignorelib", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "ignorelib", "config.yaml")
	}
	return filepath.Join(home, ".config", "ignorelib", "config.yaml")
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := cfg.readYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load user config from %s: %w", configPath, err)
	}
	return &cfg, nil
}

// Load loads configuration for the project in dir.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/ignorelib/config.yaml)
//  3. Project config (.ignorelib.yaml in project root)
//  4. Environment variables (IGNORELIB_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if userCfg, err := LoadUserConfig(); err != nil {
		return nil, err
	} else if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none exists.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigYAML, ProjectConfigYML} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// LoadFile returns the defaults overlaid with the single file at path.
// No other layer is applied and the result is not validated.
func LoadFile(path string) (*Config, error) {
	var parsed Config
	if err := parsed.readYAML(path); err != nil {
		return nil, err
	}
	cfg := NewConfig()
	cfg.mergeWith(&parsed)
	return cfg, nil
}

// loadFromFile merges .ignorelib.yaml or .ignorelib.yml from dir.
func (c *Config) loadFromFile(dir string) error {
	p := ProjectConfigPath(dir)
	if p == "" {
		return nil
	}

	var parsed Config
	if err := parsed.readYAML(p); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

// readYAML parses a YAML file into c.
func (c *Config) readYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Ignore.FileName != "" {
		c.Ignore.FileName = other.Ignore.FileName
	}
	if other.Ignore.IgnoreCase {
		c.Ignore.IgnoreCase = true
	}
	if len(other.Ignore.GlobalFiles) > 0 {
		c.Ignore.GlobalFiles = other.Ignore.GlobalFiles
	}
	if len(other.Ignore.GlobalPatterns) > 0 {
		c.Ignore.GlobalPatterns = other.Ignore.GlobalPatterns
	}
	if other.Ignore.PatternCacheSize != 0 {
		c.Ignore.PatternCacheSize = other.Ignore.PatternCacheSize
	}

	if other.Walk.SkipEmptyDirs {
		c.Walk.SkipEmptyDirs = true
	}
	if other.Walk.FollowSymlinks {
		c.Walk.FollowSymlinks = true
	}
	if len(other.Walk.Include) > 0 {
		c.Walk.Include = other.Walk.Include
	}
	if len(other.Walk.Exclude) > 0 {
		// Merge with earlier layers rather than replace
		c.Walk.Exclude = append(c.Walk.Exclude, other.Walk.Exclude...)
	}
	if other.Walk.MaxFileSize != 0 {
		c.Walk.MaxFileSize = other.Walk.MaxFileSize
	}
	if other.Walk.SkipBinary {
		c.Walk.SkipBinary = true
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Color != "" {
		c.Output.Color = other.Output.Color
	}

	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies IGNORELIB_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("IGNORELIB_IGNORE_FILE_NAME"); v != "" {
		c.Ignore.FileName = v
	}
	if v := os.Getenv("IGNORELIB_IGNORE_CASE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Ignore.IgnoreCase = b
		}
	}
	if v := os.Getenv("IGNORELIB_GLOBAL_FILES"); v != "" {
		c.Ignore.GlobalFiles = filepath.SplitList(v)
	}
	if v := os.Getenv("IGNORELIB_GLOBAL_PATTERNS"); v != "" {
		c.Ignore.GlobalPatterns = splitComma(v)
	}
	if v := os.Getenv("IGNORELIB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func splitComma(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FindProjectRoot finds the project root directory.
// It looks for a .git directory or .ignorelib.yaml/.yml file by walking up the
// directory tree, and falls back to startDir.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}
		if ProjectConfigPath(currentDir) != "" {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("version must be %d, got %d", CurrentVersion, c.Version)
	}

	name := c.Ignore.FileName
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("ignore.file_name must be a bare file name, got %q", name)
	}
	if c.Ignore.PatternCacheSize < 0 {
		return fmt.Errorf("ignore.pattern_cache_size must be non-negative, got %d", c.Ignore.PatternCacheSize)
	}
	if c.Walk.MaxFileSize < 0 {
		return fmt.Errorf("walk.max_file_size must be non-negative, got %d", c.Walk.MaxFileSize)
	}

	validFormats := map[string]bool{"text": true, "json": true, "yaml": true}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("output.format must be 'text', 'json' or 'yaml', got %s", c.Output.Format)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[strings.ToLower(c.Output.Color)] {
		return fmt.Errorf("output.color must be 'auto', 'always' or 'never', got %s", c.Output.Color)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}

	return nil
}

// ManagerOptions converts the ignore section into ignore.Manager options.
func (c *Config) ManagerOptions(logger *slog.Logger) []ignore.Option {
	opts := []ignore.Option{
		ignore.WithIgnoreFileName(c.Ignore.FileName),
		ignore.WithIgnoreCase(c.Ignore.IgnoreCase),
		ignore.WithGlobalIgnoreFiles(c.Ignore.GlobalFiles...),
		ignore.WithGlobalPatterns(c.Ignore.GlobalPatterns...),
		ignore.WithPatternCacheSize(c.Ignore.PatternCacheSize),
	}
	if logger != nil {
		opts = append(opts, ignore.WithLogger(logger))
	}
	return opts
}

// WalkOptions converts the walk section into ignore.Manager walk options.
func (c *Config) WalkOptions() []ignore.WalkOption {
	var opts []ignore.WalkOption
	if c.Walk.SkipEmptyDirs {
		opts = append(opts, ignore.WithSkipEmptyDirs())
	}
	if c.Walk.FollowSymlinks {
		opts = append(opts, ignore.WithFollowSymlinks(true))
	}
	return opts
}

// WriteTemplate writes a commented configuration template to path.
// The template is checked to parse before anything is written.
func WriteTemplate(path, template string) error {
	var parsed Config
	if err := yaml.Unmarshal([]byte(template), &parsed); err != nil {
		return fmt.Errorf("invalid config template: %w", err)
	}
	return writeConfigFile(path, []byte(template))
}

func writeConfigFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// dirExists checks if a directory exists.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
