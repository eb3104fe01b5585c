// Package config loads and validates profiling run configuration from a
// YAML or JSON file, with environment variables supplying defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/datprof/schemap/pkg/profile"
)

// Loader types accepted by the "loader.type" field.
const (
	LoaderFiles  = "files"
	LoaderDir    = "dir"
	LoaderGlob   = "glob"
	LoaderObject = "object"
)

// Config is the full configuration of one profiling run.
type Config struct {
	Loader  LoaderConfig  `yaml:"loader" json:"loader"`
	Analyze AnalyzeConfig `yaml:"analyze" json:"analyze"`
	Logging LogConfig     `yaml:"logging" json:"logging"`
}

// LoaderConfig selects and parameterizes the document producer.
type LoaderConfig struct {
	Type      string       `yaml:"type" json:"type"`
	Paths     []string     `yaml:"paths" json:"paths"`         // files
	Dirs      []string     `yaml:"dirs" json:"dirs"`           // dir
	Patterns  []string     `yaml:"patterns" json:"patterns"`   // glob
	Recursive bool         `yaml:"recursive" json:"recursive"` // dir
	Strict    bool         `yaml:"strict" json:"strict"`       // fail on unsupported files
	Object    ObjectConfig `yaml:"object" json:"object"`       // object
}

// ObjectConfig describes the S3-compatible document store.
type ObjectConfig struct {
	Endpoint  string   `yaml:"endpoint" json:"endpoint"`
	Region    string   `yaml:"region" json:"region"`
	AccessKey string   `yaml:"access_key" json:"access_key"`
	SecretKey string   `yaml:"secret_key" json:"secret_key"`
	Bucket    string   `yaml:"bucket" json:"bucket"`
	Prefixes  []string `yaml:"prefixes" json:"prefixes"`
	UseSSL    bool     `yaml:"use_ssl" json:"use_ssl"`
	CacheSize int      `yaml:"cache_size" json:"cache_size"`
}

// AnalyzeConfig bounds the run itself.
type AnalyzeConfig struct {
	TextLimit     int    `yaml:"text_limit" json:"text_limit"`
	DiscreteLimit int    `yaml:"discrete_limit" json:"discrete_limit"`
	Workers       int    `yaml:"workers" json:"workers"`
	Filter        string `yaml:"filter" json:"filter"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Defaults returns the configuration before any file is applied, seeded
// from environment variables where set.
func Defaults() Config {
	return Config{
		Analyze: AnalyzeConfig{
			TextLimit:     getEnvInt("SCHEMAP_TEXT_LIMIT", profile.DefaultTextLimit),
			DiscreteLimit: getEnvInt("SCHEMAP_DISCRETE_LIMIT", profile.DefaultDiscreteLimit),
			Workers:       getEnvInt("SCHEMAP_WORKERS", 1),
			Filter:        os.Getenv("SCHEMAP_FILTER"),
		},
		Loader: LoaderConfig{
			Object: ObjectConfig{
				Endpoint:  os.Getenv("SCHEMAP_OBJECT_ENDPOINT"),
				Region:    os.Getenv("SCHEMAP_OBJECT_REGION"),
				AccessKey: os.Getenv("SCHEMAP_OBJECT_ACCESS_KEY"),
				SecretKey: os.Getenv("SCHEMAP_OBJECT_SECRET_KEY"),
				Bucket:    os.Getenv("SCHEMAP_OBJECT_BUCKET"),
				UseSSL:    getEnvBool("SCHEMAP_OBJECT_USE_SSL", true),
			},
		},
		Logging: LogConfig{
			Level:      getEnvString("SCHEMAP_LOG_LEVEL", "info"),
			File:       os.Getenv("SCHEMAP_LOG_FILE"),
			MaxSizeMB:  getEnvInt("SCHEMAP_LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("SCHEMAP_LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvInt("SCHEMAP_LOG_MAX_AGE_DAYS", 28),
			Compress:   getEnvBool("SCHEMAP_LOG_COMPRESS", true),
		},
	}
}

// Load reads the configuration file at path over the environment-seeded
// defaults and validates the result. The format follows the extension:
// .yaml/.yml or .json.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config file type %q: supported types are .json and .yaml", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a runnable analysis.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Loader.Type)) {
	case LoaderFiles:
		if len(c.Loader.Paths) == 0 {
			return fmt.Errorf("loader type %q requires at least one path", LoaderFiles)
		}
	case LoaderDir:
		if len(c.Loader.Dirs) == 0 {
			return fmt.Errorf("loader type %q requires at least one directory", LoaderDir)
		}
	case LoaderGlob:
		if len(c.Loader.Patterns) == 0 {
			return fmt.Errorf("loader type %q requires at least one pattern", LoaderGlob)
		}
	case LoaderObject:
		o := c.Loader.Object
		if o.Endpoint == "" || o.Bucket == "" {
			return fmt.Errorf("loader type %q requires an endpoint and a bucket", LoaderObject)
		}
	case "":
		return fmt.Errorf("missing required configuration: loader.type")
	default:
		return fmt.Errorf("invalid loader type: %q", c.Loader.Type)
	}

	if c.Analyze.TextLimit < 0 {
		return fmt.Errorf("analyze.text_limit must not be negative")
	}
	if c.Analyze.DiscreteLimit < 0 {
		return fmt.Errorf("analyze.discrete_limit must not be negative")
	}
	if c.Analyze.Workers < 0 {
		return fmt.Errorf("analyze.workers must not be negative")
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return fallback
}
