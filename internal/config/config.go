package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlorentedev/hotelreviews/internal/taxonomy"
)

// Config holds all application configuration.
type Config struct {
	Port            int    `yaml:"port"`
	APIKey          string `yaml:"api_key"`
	OutputRoot      string `yaml:"output_root"`
	OutputDir       string `yaml:"output_dir"`
	TestBatchDir    string `yaml:"test_batch_dir"`
	TotalRecords    int    `yaml:"total_records"`
	MaxTotalRecords int    `yaml:"max_total_records"`
	ChunkSize       int    `yaml:"chunk_size"`
	Style           string `yaml:"style"`
	TaxonomyPath    string `yaml:"taxonomy_path"`
	Seed            int64  `yaml:"seed"`
	LogInterval     int    `yaml:"log_interval"`
	LogLevel        string `yaml:"log_level"`
	// RateLimit is the number of generation requests allowed per minute and
	// client. Zero disables limiting.
	RateLimit int `yaml:"rate_limit"`
}

// ValidationError is returned when a loaded configuration is unusable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "config: " + e.Message
}

func defaults() Config {
	return Config{
		Port:            8090,
		OutputRoot:      ".",
		OutputDir:       "dataset_parts",
		TestBatchDir:    "test_batch",
		TotalRecords:    750000,
		MaxTotalRecords: 10000000,
		ChunkSize:       50000,
		Style:           taxonomy.StyleDescriptive,
		LogInterval:     50000,
		LogLevel:        "info",
		RateLimit:       10,
	}
}

const envPrefix = "HOTELREVIEWS_"

// Load loads configuration from a YAML file (if path is non-empty), then
// applies HOTELREVIEWS_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	strs := map[string]*string{
		"API_KEY":        &cfg.APIKey,
		"OUTPUT_ROOT":    &cfg.OutputRoot,
		"OUTPUT_DIR":     &cfg.OutputDir,
		"TEST_BATCH_DIR": &cfg.TestBatchDir,
		"STYLE":          &cfg.Style,
		"TAXONOMY_PATH":  &cfg.TaxonomyPath,
		"LOG_LEVEL":      &cfg.LogLevel,
	}
	for name, dst := range strs {
		if v := os.Getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PORT":              &cfg.Port,
		"TOTAL_RECORDS":     &cfg.TotalRecords,
		"MAX_TOTAL_RECORDS": &cfg.MaxTotalRecords,
		"CHUNK_SIZE":        &cfg.ChunkSize,
		"LOG_INTERVAL":      &cfg.LogInterval,
		"RATE_LIMIT":        &cfg.RateLimit,
	}
	for name, dst := range ints {
		if v := os.Getenv(envPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("config: invalid %s%s %q: %w", envPrefix, name, v, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv(envPrefix + "SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid %sSEED %q: %w", envPrefix, v, err)
		}
		cfg.Seed = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no run could start with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &ValidationError{Message: fmt.Sprintf("port %d out of range", c.Port)}
	}
	if c.TotalRecords <= 0 {
		return &ValidationError{Message: "total_records must be greater than 0"}
	}
	if c.MaxTotalRecords <= 0 {
		return &ValidationError{Message: "max_total_records must be greater than 0"}
	}
	if c.TotalRecords > c.MaxTotalRecords {
		return &ValidationError{Message: fmt.Sprintf("total_records %d exceeds max_total_records %d", c.TotalRecords, c.MaxTotalRecords)}
	}
	if c.ChunkSize <= 0 {
		return &ValidationError{Message: "chunk_size must be greater than 0"}
	}
	if c.LogInterval < 0 {
		return &ValidationError{Message: "log_interval must not be negative"}
	}
	if c.RateLimit < 0 {
		return &ValidationError{Message: "rate_limit must not be negative"}
	}
	if !knownStyle(c.Style) {
		return &ValidationError{Message: fmt.Sprintf("unknown style %q (available: %s)", c.Style, strings.Join(taxonomy.Styles(), ", "))}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func knownStyle(style string) bool {
	for _, s := range taxonomy.Styles() {
		if s == style {
			return true
		}
	}
	return false
}

// ParseLevel maps a log_level value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
