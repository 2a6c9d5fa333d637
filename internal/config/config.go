package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the name of the optional config file (without extension)
	FileName = ".gitlab-components-docs"
	// EnvPrefix prefixes every environment variable read by the tool
	EnvPrefix = "GLCDOCS"
	// EnvFile is loaded from the working directory when present
	EnvFile = ".env"

	// UnknownTitle is used when no catalog name can be derived
	UnknownTitle = "UNKNOWN_TITLE"
	// DefaultDescription is the catalog description used when none is configured
	DefaultDescription = "A super GitLab CI/CD catalog!"
)

// Config holds the settings of a documentation run
type Config struct {
	CatalogName        string   `mapstructure:"catalog_name" yaml:"catalog_name"`
	CatalogDescription string   `mapstructure:"catalog_description" yaml:"catalog_description"`
	TemplatesDir       string   `mapstructure:"templates_dir" yaml:"templates_dir"`
	Output             string   `mapstructure:"output" yaml:"output"`
	Template           string   `mapstructure:"template" yaml:"template"`
	Footer             bool     `mapstructure:"footer" yaml:"footer"`
	Exclude            []string `mapstructure:"exclude" yaml:"exclude"`
	LogLevel           string   `mapstructure:"log_level" yaml:"log_level"`
}

// LoadOptions controls where Load looks for settings
type LoadOptions struct {
	// WorkDir is the directory the config file, the .env file and the
	// default catalog name are resolved from
	WorkDir string
	// ConfigFile, when set, is the only config file read and must exist
	ConfigFile string
	// Flags are bound on top of every other source
	Flags *pflag.FlagSet
}

// flagKeys maps config keys to the command-line flags overriding them
var flagKeys = map[string]string{
	"catalog_name":        "catalog-name",
	"catalog_description": "catalog-desc",
	"templates_dir":       "templates-dir",
	"output":              "output",
	"template":            "template",
	"exclude":             "exclude",
	"log_level":           "log-level",
}

// DefaultConfig returns the settings used when nothing else is configured
func DefaultConfig(workDir string) Config {
	return Config{
		CatalogName:        defaultCatalogName(workDir),
		CatalogDescription: DefaultDescription,
		TemplatesDir:       "templates",
		Output:             "README.md",
		Template:           "README.md.tmpl",
		Footer:             true,
		Exclude:            []string{},
		LogLevel:           "info",
	}
}

func defaultCatalogName(workDir string) string {
	name := filepath.Base(workDir)
	if workDir == "" || name == "." || name == string(filepath.Separator) {
		return UnknownTitle
	}
	return name
}

// Load merges defaults, the config file, the environment and flags, in
// increasing order of precedence. It returns the config and the path of the
// config file that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig(opts.WorkDir)
	v.SetDefault("catalog_name", defaults.CatalogName)
	v.SetDefault("catalog_description", defaults.CatalogDescription)
	v.SetDefault("templates_dir", defaults.TemplatesDir)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("template", defaults.Template)
	v.SetDefault("footer", defaults.Footer)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("log_level", defaults.LogLevel)

	// Read config file
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(opts.WorkDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(filepath.Join(opts.WorkDir, EnvFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range flagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, "", fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if opts.Flags != nil && opts.Flags.Changed("no-footer") {
		if noFooter, err := opts.Flags.GetBool("no-footer"); err == nil && noFooter {
			cfg.Footer = false
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks the settings that cannot be fixed up with a default
func (c *Config) Validate() error {
	if c.TemplatesDir == "" {
		return fmt.Errorf("templates_dir is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if c.Template != "" && !doublestar.ValidatePattern(c.Template) {
		return fmt.Errorf("invalid template pattern %q", c.Template)
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// ToYAML converts a Config back to YAML format
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
