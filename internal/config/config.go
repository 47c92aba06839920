// Package config loads the guidebook command configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/grafana/guidebook/internal/pages"
	"github.com/grafana/guidebook/internal/search"
)

// FileName is the configuration file name without extension.
const FileName = "guidebook"

// EnvPrefix prefixes environment variables overriding configuration keys.
const EnvPrefix = "GUIDEBOOK"

// Config is the guidebook configuration.
type Config struct {
	ContentDir string         `mapstructure:"content_dir"`
	OutDir     string         `mapstructure:"out_dir"`
	Variables  map[string]any `mapstructure:"-"`
	UseEnv     bool           `mapstructure:"use_env"`
	EnvFile    string         `mapstructure:"env_file"`
	Extensions []string       `mapstructure:"extensions"`
	Search     SearchConfig   `mapstructure:"search"`
	Log        LogConfig      `mapstructure:"log"`
}

// SearchConfig configures the search index.
type SearchConfig struct {
	Analyzer      string `mapstructure:"analyzer"`
	MaxResults    int    `mapstructure:"max_results"`
	IncludeTitles bool   `mapstructure:"include_titles"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("content_dir", "pages")
	v.SetDefault("out_dir", "dist")
	v.SetDefault("use_env", false)
	v.SetDefault("env_file", "")
	v.SetDefault("extensions", pages.DefaultExtensions)
	v.SetDefault("search.analyzer", "")
	v.SetDefault("search.max_results", 0)
	v.SetDefault("search.include_titles", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Loader reads the configuration from a file, the environment and bound flags.
type Loader struct {
	fs afero.Fs
	v  *viper.Viper
}

// NewLoader returns a loader reading fsys. When path is empty the configuration file is
// looked up as guidebook.yaml in the working directory and in ./config.
func NewLoader(fsys afero.Fs, path string) *Loader {
	v := viper.New()
	v.SetFs(fsys)
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{fs: fsys, v: v}
}

// Viper exposes the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load reads the configuration. A missing configuration file is not an error unless it was
// named explicitly.
func (l *Loader) Load() (*Config, error) {
	v := l.v

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	vars, err := l.readVariables()
	if err != nil {
		return nil, err
	}
	cfg.Variables = vars

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readVariables decodes the variables section of the configuration file directly, since
// viper folds key case and variable names are case-sensitive.
func (l *Loader) readVariables() (map[string]any, error) {
	path := l.v.ConfigFileUsed()
	if path == "" || !l.v.InConfig("variables") {
		return map[string]any{}, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var file struct {
		Variables map[string]any `yaml:"variables"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode variables: %w", err)
	}
	if file.Variables == nil {
		file.Variables = map[string]any{}
	}

	return file.Variables, nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return errors.New("content_dir must not be empty")
	}
	if c.Search.MaxResults < 0 {
		return errors.New("search.max_results must be >= 0")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Bindings returns the template and hidden-flag variables: the env file entries overlaid
// by the configured variables.
func (c *Config) Bindings(fsys afero.Fs) (pages.Variables, error) {
	vars := make(pages.Variables)

	if c.EnvFile != "" {
		file, err := fsys.Open(c.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open env file: %w", err)
		}
		defer file.Close()

		entries, err := godotenv.Parse(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse env file %s: %w", c.EnvFile, err)
		}
		for name, value := range entries {
			vars[name] = value
		}
	}

	for name, value := range c.Variables {
		vars[name] = value
	}

	return vars, nil
}

// ScanOptions translates the configuration into scan options.
func (c *Config) ScanOptions(fsys afero.Fs) ([]pages.Option, error) {
	vars, err := c.Bindings(fsys)
	if err != nil {
		return nil, err
	}

	opts := []pages.Option{pages.WithVariables(vars)}
	if c.UseEnv {
		opts = append(opts, pages.WithEnvironment())
	}
	if len(c.Extensions) > 0 {
		opts = append(opts, pages.WithExtensions(c.Extensions...))
	}

	return opts, nil
}

// SearchOptions returns the search index options.
func (c *Config) SearchOptions() search.Options {
	return search.Options{
		Analyzer:      c.Search.Analyzer,
		MaxResults:    c.Search.MaxResults,
		IncludeTitles: c.Search.IncludeTitles,
	}
}

// GuidePath is where the built navigation tree is written.
func (c *Config) GuidePath() string {
	return filepath.Join(c.OutDir, "guide.json")
}

// SearchPath is where the built search index is written.
func (c *Config) SearchPath() string {
	return filepath.Join(c.OutDir, "search.json")
}
