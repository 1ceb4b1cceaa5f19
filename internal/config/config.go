package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. APLAB_ADDR.
const EnvPrefix = "APLAB"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything an App instance needs to run.
type Config struct {
	Addr          string        `mapstructure:"addr" validate:"required"`
	Title         string        `mapstructure:"title" validate:"required"`
	Icon          string        `mapstructure:"icon"`
	Layout        string        `mapstructure:"layout" validate:"oneof=wide centered"`
	DefaultLocale string        `mapstructure:"default_locale" validate:"required"`
	LogLevel      string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string        `mapstructure:"log_format" validate:"oneof=text json"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
	StrictCatalog bool          `mapstructure:"strict_catalog"`
	Live          bool          `mapstructure:"live"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8501")
	v.SetDefault("title", "APlab")
	v.SetDefault("icon", "🔬")
	v.SetDefault("layout", "wide")
	v.SetDefault("default_locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("session_ttl", 2*time.Hour)
	v.SetDefault("sweep_interval", time.Minute)
	v.SetDefault("strict_catalog", true)
	v.SetDefault("live", true)
}

// Load assembles the configuration from v. Flags must already be bound to v;
// file names the optional config file (YAML, TOML or JSON by extension).
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	c.normalize()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	c, err := Load(viper.New(), "")
	if err != nil {
		panic(fmt.Sprintf("built-in configuration is invalid: %v", err))
	}
	return c
}

func (c *Config) normalize() {
	c.Layout = strings.ToLower(strings.TrimSpace(c.Layout))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.DefaultLocale = strings.TrimSpace(c.DefaultLocale)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	key := keyFor(fe.StructField())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fmt.Sprint(fe.Value()))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	}
	return fmt.Sprintf("%s failed the %q check", key, fe.Tag())
}

var fieldKeys = map[string]string{
	"Addr":          "addr",
	"Title":         "title",
	"Icon":          "icon",
	"Layout":        "layout",
	"DefaultLocale": "default_locale",
	"LogLevel":      "log_level",
	"LogFormat":     "log_format",
	"SessionTTL":    "session_ttl",
	"SweepInterval": "sweep_interval",
	"StrictCatalog": "strict_catalog",
	"Live":          "live",
}

func keyFor(field string) string {
	if key, ok := fieldKeys[field]; ok {
		return key
	}
	return field
}
