package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrInvalidOrigin        = errors.New("server origin must be an absolute http(s) URL")
	ErrInvalidBaseURL       = errors.New("server base URL must be an absolute http(s) URL")
	ErrInvalidFailurePolicy = errors.New("upload failure policy must be \"continue\" or \"halt\"")
	ErrInvalidDelay         = errors.New("upload delays must not be negative")
	ErrInvalidTimeout       = errors.New("server timeout must not be negative")
	ErrInvalidRetryConfig   = errors.New("download retry wait min must not exceed wait max")
	ErrInvalidLogFormat     = errors.New("log format must be \"console\" or \"json\"")
)

// FailurePolicy decides what a batch does after one item fails
type FailurePolicy string

const (
	// ContinueOnFailure moves on to the next item after a failure
	ContinueOnFailure FailurePolicy = "continue"
	// HaltOnFailure stops the batch at the first failure
	HaltOnFailure FailurePolicy = "halt"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Download DownloadConfig `mapstructure:"download"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig locates the file service
type ServerConfig struct {
	// Origin is used when no BaseURL override is configured
	Origin string `mapstructure:"origin"`
	// BaseURL replaces Origin entirely and may carry a path prefix
	BaseURL string `mapstructure:"base_url"`
	// Timeout bounds each request to the service, zero means none
	Timeout time.Duration `mapstructure:"timeout"`
}

// UploadConfig holds batch upload behaviour
type UploadConfig struct {
	OnFailure         FailurePolicy `mapstructure:"on_failure"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"`
	ErrorDisplayDelay time.Duration `mapstructure:"error_display_delay"`
	ProgressInterval  time.Duration `mapstructure:"progress_interval"`
}

// DownloadConfig holds retry settings for downloads
type DownloadConfig struct {
	Retries      int           `mapstructure:"retries"`
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Origin:  "http://localhost:8080",
			BaseURL: "",
			Timeout: 0,
		},
		Upload: UploadConfig{
			OnFailure:         ContinueOnFailure,
			SettleDelay:       2 * time.Second,
			ErrorDisplayDelay: 5 * time.Second,
			ProgressInterval:  100 * time.Millisecond,
		},
		Download: DownloadConfig{
			Retries:      3,
			RetryWaitMin: 500 * time.Millisecond,
			RetryWaitMax: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers the defaults with viper so config files and env vars can override them
func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("server.origin", d.Server.Origin)
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("server.timeout", d.Server.Timeout)
	v.SetDefault("upload.on_failure", string(d.Upload.OnFailure))
	v.SetDefault("upload.settle_delay", d.Upload.SettleDelay)
	v.SetDefault("upload.error_display_delay", d.Upload.ErrorDisplayDelay)
	v.SetDefault("upload.progress_interval", d.Upload.ProgressInterval)
	v.SetDefault("download.retries", d.Download.Retries)
	v.SetDefault("download.retry_wait_min", d.Download.RetryWaitMin)
	v.SetDefault("download.retry_wait_max", d.Download.RetryWaitMax)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load builds a Config from viper and validates it
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Origin:  v.GetString("server.origin"),
			BaseURL: v.GetString("server.base_url"),
		},
		Upload: UploadConfig{
			OnFailure:         FailurePolicy(strings.ToLower(v.GetString("upload.on_failure"))),
			SettleDelay:       v.GetDuration("upload.settle_delay"),
			ErrorDisplayDelay: v.GetDuration("upload.error_display_delay"),
			ProgressInterval:  v.GetDuration("upload.progress_interval"),
		},
		Download: DownloadConfig{
			Retries:      v.GetInt("download.retries"),
			RetryWaitMin: v.GetDuration("download.retry_wait_min"),
			RetryWaitMax: v.GetDuration("download.retry_wait_max"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// BaseURL is the single resolved prefix for every request path and link: the base URL
// override when set, else the origin, without a trailing slash
func (c *Config) BaseURL() string {
	base := c.Server.BaseURL
	if base == "" {
		base = c.Server.Origin
	}
	return strings.TrimRight(base, "/")
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	if !isHTTPURL(c.Server.Origin) {
		return ErrInvalidOrigin
	}
	if c.Server.BaseURL != "" && !isHTTPURL(c.Server.BaseURL) {
		return ErrInvalidBaseURL
	}
	if c.Server.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Upload.OnFailure != ContinueOnFailure && c.Upload.OnFailure != HaltOnFailure {
		return ErrInvalidFailurePolicy
	}
	if c.Upload.SettleDelay < 0 || c.Upload.ErrorDisplayDelay < 0 || c.Upload.ProgressInterval < 0 {
		return ErrInvalidDelay
	}
	if c.Download.RetryWaitMin > c.Download.RetryWaitMax {
		return ErrInvalidRetryConfig
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return ErrInvalidLogFormat
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
