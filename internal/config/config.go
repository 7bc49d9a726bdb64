package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultPropertiesFile is the project properties file holding version inputs.
	DefaultPropertiesFile = "gradle.properties"
	// ToolConfigFile holds modver's own settings.
	ToolConfigFile = ".modver.yaml"
	// DefaultReplaceToken is the placeholder replaced with the version in source files.
	DefaultReplaceToken = "@@VERSION@@"
)

type Config struct {
	// Project properties
	ForgeVersion       string `mapstructure:"forgeVersion"`
	MCVersion          string `mapstructure:"mcVersion"`
	VersionSuffix      string `mapstructure:"versionSuffix"`
	VersionMinorFreeze string `mapstructure:"versionMinorFreeze"`

	// Tool settings
	ProjectDir    string   `mapstructure:"project_dir"`
	Branch        string   `mapstructure:"branch"`
	FetchTags     bool     `mapstructure:"fetch_tags"`
	GitCLI        bool     `mapstructure:"git_cli"`
	VersionFile   string   `mapstructure:"version_file"`
	BuildInfoFile string   `mapstructure:"build_info_file"`
	ModInfoFile   string   `mapstructure:"mod_info_file"`
	ReplaceIn     []string `mapstructure:"replace_in"`
	ReplaceToken  string   `mapstructure:"replace_token"`
	OutputDir     string   `mapstructure:"output_dir"`
	LockDir       string   `mapstructure:"lock_dir"`
	LogLevel      string   `mapstructure:"log_level"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ProjectDir:    ".",
		VersionFile:   "VERSION",
		BuildInfoFile: filepath.Join("build", "modver.json"),
		ModInfoFile:   filepath.Join("src", "main", "resources", "mcmod.info"),
		ReplaceToken:  DefaultReplaceToken,
		OutputDir:     filepath.Join("build", "modver"),
		LogLevel:      "info",
	}
}

// EffectiveMCVersion returns the configured Minecraft version, falling back
// to the part of the Forge version before the first dash.
func (c *Config) EffectiveMCVersion() string {
	if c.MCVersion != "" {
		return c.MCVersion
	}
	mc, _, _ := strings.Cut(c.ForgeVersion, "-")
	return mc
}

// ProjectPath resolves a project-relative path against ProjectDir.
func (c *Config) ProjectPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.ProjectDir, rel)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.EffectiveMCVersion() == "" {
		return fmt.Errorf("minecraft version is not set: provide mcVersion or forgeVersion")
	}
	if err := ValidateMinorFreeze(c.VersionMinorFreeze); err != nil {
		return fmt.Errorf("invalid versionMinorFreeze: %w", err)
	}
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ReplaceToken == "" {
		return fmt.Errorf("replace_token cannot be empty")
	}
	for name, path := range map[string]string{
		"version_file":    c.VersionFile,
		"build_info_file": c.BuildInfoFile,
		"output_dir":      c.OutputDir,
	} {
		if path == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		// Check for path traversal in generated output locations
		if strings.Contains(path, "..") {
			return fmt.Errorf("%s contains invalid path traversal", name)
		}
	}
	return nil
}

// ValidateMinorFreeze accepts an empty value or a non-negative integer.
func ValidateMinorFreeze(value string) error {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("expected a non-negative integer, got %q", value)
	}
	if n < 0 {
		return fmt.Errorf("expected a non-negative integer, got %d", n)
	}
	return nil
}

// ValidateLogLevel ensures the log level is one the logger supports.
func ValidateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log_level %q: expected debug, info, warn or error", level)
	}
}

// LoadConfig reads the project properties file and the optional tool
// config file from projectDir, then applies environment overrides.
func LoadConfig(projectDir string) (*Config, error) {
	v := viper.New()
	// Configure environment variables
	v.SetEnvPrefix("MODVER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindings := map[string][]string{
		"forgeVersion":       {"MODVER_FORGE_VERSION"},
		"mcVersion":          {"MODVER_MC_VERSION"},
		"versionSuffix":      {"MODVER_VERSION_SUFFIX"},
		"versionMinorFreeze": {"MODVER_VERSION_MINOR_FREEZE"},
		// CI checkouts are usually detached, so take the branch from the CI environment
		"branch":          {"MODVER_BRANCH", "GITHUB_HEAD_REF"},
		"fetch_tags":      {"MODVER_FETCH_TAGS"},
		"git_cli":         {"MODVER_GIT_CLI"},
		"version_file":    {"MODVER_VERSION_FILE"},
		"build_info_file": {"MODVER_BUILD_INFO_FILE"},
		"mod_info_file":   {"MODVER_MOD_INFO_FILE"},
		"replace_in":      {"MODVER_REPLACE_IN"},
		"replace_token":   {"MODVER_REPLACE_TOKEN"},
		"output_dir":      {"MODVER_OUTPUT_DIR"},
		"lock_dir":        {"MODVER_LOCK_DIR"},
		"log_level":       {"MODVER_LOG_LEVEL"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("version_file", defaults.VersionFile)
	v.SetDefault("build_info_file", defaults.BuildInfoFile)
	v.SetDefault("mod_info_file", defaults.ModInfoFile)
	v.SetDefault("replace_token", defaults.ReplaceToken)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("log_level", defaults.LogLevel)

	propertiesFile := os.Getenv("MODVER_PROPERTIES_FILE")
	if propertiesFile == "" {
		propertiesFile = DefaultPropertiesFile
	}
	if !filepath.IsAbs(propertiesFile) {
		propertiesFile = filepath.Join(projectDir, propertiesFile)
	}
	if err := mergePropertiesFile(v, propertiesFile); err != nil {
		return nil, err
	}
	if err := mergeConfigFile(v, filepath.Join(projectDir, ToolConfigFile), "yaml"); err != nil {
		return nil, err
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.ProjectDir = projectDir
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// mergePropertiesFile merges a Java properties file into v. A missing file is not an error.
func mergePropertiesFile(v *viper.Viper, path string) error {
	exists, err := afero.Exists(afero.NewOsFs(), path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return nil
	}
	loader := &properties.Loader{
		Encoding:         properties.UTF8,
		DisableExpansion: true,
	}
	props, err := loader.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	values := make(map[string]any, props.Len())
	for key, value := range props.Map() {
		// dotted keys are gradle's own settings, e.g. org.gradle.jvmargs
		if strings.Contains(key, ".") {
			continue
		}
		values[key] = value
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("failed to merge %s: %w", path, err)
	}
	return nil
}

// mergeConfigFile merges path into v. A missing file is not an error.
func mergeConfigFile(v *viper.Viper, path, configType string) error {
	v.SetConfigFile(path)
	v.SetConfigType(configType)
	if err := v.MergeInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
