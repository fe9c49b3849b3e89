package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gorewood/docgen/internal/kv"
	"github.com/gorewood/docgen/internal/pdf"
)

// FileName is the config file looked up in Dir().
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides: store.driver is DOCGEN_STORE_DRIVER.
const EnvPrefix = "DOCGEN"

// Config is the effective docgen configuration.
type Config struct {
	Store  StoreConfig  `mapstructure:"store" json:"store" yaml:"store"`
	Log    LogConfig    `mapstructure:"log" json:"log" yaml:"log"`
	Export ExportConfig `mapstructure:"export" json:"export" yaml:"export"`
	PDF    PDFConfig    `mapstructure:"pdf" json:"pdf" yaml:"pdf"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-" json:"source,omitempty" yaml:"-"`
}

// StoreConfig selects the key-value backend.
type StoreConfig struct {
	Driver string `mapstructure:"driver" json:"driver" yaml:"driver"`
	Path   string `mapstructure:"path" json:"path" yaml:"path"`
	URL    string `mapstructure:"url" json:"url,omitempty" yaml:"url,omitempty"`
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`
}

// LogConfig controls diagnostics written by the logger.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level" yaml:"level"`
	File  string `mapstructure:"file" json:"file,omitempty" yaml:"file,omitempty"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Dir    string `mapstructure:"dir" json:"dir" yaml:"dir"`
	Name   string `mapstructure:"name" json:"name" yaml:"name"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
	Title  string `mapstructure:"title" json:"title,omitempty" yaml:"title,omitempty"`
}

// PDFConfig holds PDF text styling.
type PDFConfig struct {
	Font     string  `mapstructure:"font" json:"font" yaml:"font"`
	FontSize float64 `mapstructure:"font_size" json:"font_size" yaml:"font_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", kv.DriverFile)
	v.SetDefault("store.path", DataDir())
	v.SetDefault("store.url", kv.DefaultRedisURL)
	v.SetDefault("store.prefix", "docgen:")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.name", "{name}")
	v.SetDefault("export.format", "pdf")
	v.SetDefault("export.title", "")
	v.SetDefault("pdf.font", "Helvetica")
	v.SetDefault("pdf.font_size", 11)
}

// Load reads configuration from path, or from config.yaml in Dir() when path
// is empty. A missing default file is not an error. Environment variables
// with the DOCGEN_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	source := path
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(filepath.Join(Dir(), FileName))
		source = v.ConfigFileUsed()
		if err := v.ReadInConfig(); err != nil {
			if !isNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			source = ""
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = source
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains(kv.Drivers, c.Store.Driver) {
		return fmt.Errorf("store.driver: unknown driver %q (want one of %s)", c.Store.Driver, strings.Join(kv.Drivers, ", "))
	}
	if c.Store.Path == "" && (c.Store.Driver == kv.DriverFile || c.Store.Driver == kv.DriverSQLite) {
		return errors.New("store.path: required for the " + c.Store.Driver + " driver")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := c.PDFOptions().Validate(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

// KVOptions returns the backend options for kv.Open.
func (c *Config) KVOptions() kv.Options {
	return kv.Options{
		Driver: c.Store.Driver,
		Path:   c.Store.Path,
		URL:    c.Store.URL,
		Prefix: c.Store.Prefix,
	}
}

// PDFOptions returns the PDF writer options.
func (c *Config) PDFOptions() pdf.Options {
	return pdf.Options{
		Font:     c.PDF.Font,
		FontSize: c.PDF.FontSize,
		Title:    c.Export.Title,
	}
}
