package common

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	OCR   OCRConfig   `mapstructure:"ocr" yaml:"ocr"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Batch BatchConfig `mapstructure:"batch" yaml:"batch"`
	Parse ParseConfig `mapstructure:"parse" yaml:"parse"`
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Tesseract      string        `mapstructure:"tesseract" yaml:"tesseract"`
	Lang           string        `mapstructure:"lang" yaml:"lang"`
	TessdataDir    string        `mapstructure:"tessdata_dir" yaml:"tessdata_dir"`
	PSM            int           `mapstructure:"psm" yaml:"psm"`
	OEM            int           `mapstructure:"oem" yaml:"oem"`
	Preprocess     bool          `mapstructure:"preprocess" yaml:"preprocess"`
	MaxImages      int           `mapstructure:"max_images" yaml:"max_images"`
	MinImageBytes  int           `mapstructure:"min_image_bytes" yaml:"min_image_bytes"`
	Concurrency    int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MinNativeChars int           `mapstructure:"min_native_chars" yaml:"min_native_chars"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BatchConfig holds directory batch settings
type BatchConfig struct {
	Workers     int           `mapstructure:"workers" yaml:"workers"`
	FileTimeout time.Duration `mapstructure:"file_timeout" yaml:"file_timeout"`
	Output      string        `mapstructure:"output" yaml:"output"`
}

// ParseConfig holds parse defaults
type ParseConfig struct {
	DefaultKind string `mapstructure:"default_kind" yaml:"default_kind"`
}

// LoadConfig reads configuration from an optional YAML file and environment
// variables with the STAYPARSE_ prefix (e.g. STAYPARSE_OCR_LANG).
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STAYPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// OCR defaults
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.lang", "eng")
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.psm", 0)
	v.SetDefault("ocr.oem", 0)
	v.SetDefault("ocr.preprocess", true)
	v.SetDefault("ocr.max_images", 10)
	v.SetDefault("ocr.min_image_bytes", 10*1024)
	v.SetDefault("ocr.concurrency", 2)
	v.SetDefault("ocr.timeout", "90s")
	v.SetDefault("ocr.min_native_chars", 50)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Batch defaults
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.file_timeout", "3m")
	v.SetDefault("batch.output", "")

	v.SetDefault("parse.default_kind", "contract")

	// TESSDATA_PREFIX is what tesseract itself reads; honour it when ours is unset.
	if os.Getenv("STAYPARSE_OCR_TESSDATA_DIR") == "" {
		if td := os.Getenv("TESSDATA_PREFIX"); td != "" {
			v.SetDefault("ocr.tessdata_dir", td)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewAppError(CodeConfig, "read config file", err)
		}
	}

	cfg := &Config{}
	cfg.OCR = OCRConfig{
		Tesseract:      v.GetString("ocr.tesseract"),
		Lang:           v.GetString("ocr.lang"),
		TessdataDir:    v.GetString("ocr.tessdata_dir"),
		PSM:            v.GetInt("ocr.psm"),
		OEM:            v.GetInt("ocr.oem"),
		Preprocess:     v.GetBool("ocr.preprocess"),
		MaxImages:      v.GetInt("ocr.max_images"),
		MinImageBytes:  v.GetInt("ocr.min_image_bytes"),
		Concurrency:    v.GetInt("ocr.concurrency"),
		Timeout:        v.GetDuration("ocr.timeout"),
		MinNativeChars: v.GetInt("ocr.min_native_chars"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Batch = BatchConfig{
		Workers:     v.GetInt("batch.workers"),
		FileTimeout: v.GetDuration("batch.file_timeout"),
		Output:      v.GetString("batch.output"),
	}
	cfg.Parse = ParseConfig{
		DefaultKind: v.GetString("parse.default_kind"),
	}
	return cfg, nil
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.Tesseract == "" {
		return NewAppError(CodeConfig, "ocr.tesseract is required", ErrInvalidInput)
	}
	if c.OCR.MaxImages < 0 || c.OCR.MinImageBytes < 0 {
		return NewAppError(CodeConfig, "ocr limits must not be negative", ErrInvalidInput)
	}
	if c.OCR.Concurrency < 1 {
		return NewAppError(CodeConfig, "ocr.concurrency must be at least 1", ErrInvalidInput)
	}
	if c.Batch.Workers < 1 {
		return NewAppError(CodeConfig, "batch.workers must be at least 1", ErrInvalidInput)
	}
	if c.Batch.FileTimeout <= 0 {
		return NewAppError(CodeConfig, "batch.file_timeout must be positive", ErrInvalidInput)
	}
	switch c.Parse.DefaultKind {
	case "contract", "invite":
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("parse.default_kind %q is not contract|invite", c.Parse.DefaultKind), ErrInvalidInput)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return NewAppError(CodeConfig, fmt.Sprintf("log.format %q is not json|text", c.Log.Format), ErrInvalidInput)
	}
	return nil
}

// SlogLevel maps log.level to a slog level (unknown values -> info).
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger builds the process logger the way the CLIs expect it.
func (c LogConfig) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
