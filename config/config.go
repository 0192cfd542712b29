// Package config loads Langfuse credentials and transport settings.
//
// Precedence (highest first): environment variables (LANGFUSE_PUBLIC_KEY,
// LANGFUSE_SECRET_KEY, LANGFUSE_HOST, LANGFUSE_TIMEOUT), the optional config
// file, defaults.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skosovsky/langfuse"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultHost is the Langfuse cloud endpoint.
const DefaultHost = "https://cloud.langfuse.com"

const envPrefix = "LANGFUSE"

// ErrInvalidConfig indicates missing or malformed settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the values a Client reads once at construction.
type Config struct {
	PublicKey string        `mapstructure:"public_key" validate:"required"`
	SecretKey string        `mapstructure:"secret_key" validate:"required"`
	Host      string        `mapstructure:"host" validate:"required,http_url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration. path may be empty to use defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("host", DefaultHost)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("public_key", "")
	v.SetDefault("secret_key", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Host = strings.TrimSuffix(cfg.Host, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and formats.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewClient builds a langfuse.Client from c. opts are applied after the timeout-bound HTTP client.
func (c *Config) NewClient(opts ...langfuse.Option) (*langfuse.Client, error) {
	base := []langfuse.Option{langfuse.WithHTTPClient(&http.Client{Timeout: c.Timeout})}
	return langfuse.New(c.PublicKey, c.SecretKey, c.Host, append(base, opts...)...)
}

// String implements fmt.Stringer with the secret key redacted.
func (c *Config) String() string {
	return fmt.Sprintf("host=%s public_key=%s secret_key=%s timeout=%s", c.Host, c.PublicKey, redact(c.SecretKey), c.Timeout)
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}
