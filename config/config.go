package config

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the client configuration.
type Config struct {
	Endpoint string `validate:"required,url"`
	Token    string `validate:"required"`
	Keyspace string
	Timeouts *Timeouts
	Breaker  *Breaker
	Logger   *Logger
	Viper    *viper.Viper
}

// Timeouts holds the default time budgets applied to cursors created
// from this configuration. Zero means "no timeout".
type Timeouts struct {
	// Request caps one page fetch.
	Request time.Duration
	// GeneralMethod caps one whole multi-call method (e.g. ToList).
	GeneralMethod time.Duration
}

// Breaker holds circuit breaker thresholds for the HTTP commander.
type Breaker struct {
	Enabled      bool
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

var validate = validator.New()

// New returns a Config with the given endpoint and token and default
// settings for everything else.
func New(endpoint, token string) *Config {
	return &Config{
		Endpoint: endpoint,
		Token:    token,
		Timeouts: defaultTimeouts(),
		Breaker:  defaultBreaker(),
		Logger:   defaultLogger(),
	}
}

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("/etc/lumen")
		v.AddConfigPath("$HOME/.lumen")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("LUMEN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch registers a callback invoked when the underlying config file
// changes. It is a no-op for configs not loaded from a file.
func Watch(cfg *Config, onChange func(*Config)) {
	if cfg == nil || cfg.Viper == nil {
		return
	}
	cfg.Viper.OnConfigChange(func(_ fsnotify.Event) {
		onChange(fromViper(cfg.Viper))
	})
	cfg.Viper.WatchConfig()
}

// Validate checks the configuration for missing or malformed fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Endpoint: v.GetString("endpoint"),
		Token:    v.GetString("token"),
		Keyspace: v.GetString("keyspace"),
		Timeouts: getTimeoutsConfig(v),
		Breaker:  getBreakerConfig(v),
		Logger:   getLoggerConfig(v),
		Viper:    v,
	}
}

func defaultTimeouts() *Timeouts {
	return &Timeouts{
		Request:       10 * time.Second,
		GeneralMethod: 30 * time.Second,
	}
}

func getTimeoutsConfig(v *viper.Viper) *Timeouts {
	t := defaultTimeouts()
	if v.IsSet("timeouts.request_ms") {
		t.Request = time.Duration(v.GetInt64("timeouts.request_ms")) * time.Millisecond
	}
	if v.IsSet("timeouts.general_method_ms") {
		t.GeneralMethod = time.Duration(v.GetInt64("timeouts.general_method_ms")) * time.Millisecond
	}
	return t
}

func defaultBreaker() *Breaker {
	return &Breaker{
		Enabled:      false,
		MaxRequests:  100,
		Interval:     5 * time.Second,
		Timeout:      3 * time.Second,
		MinRequests:  3,
		FailureRatio: 0.6,
	}
}

func getBreakerConfig(v *viper.Viper) *Breaker {
	b := defaultBreaker()
	b.Enabled = v.GetBool("breaker.enabled")
	if v.IsSet("breaker.max_requests") {
		b.MaxRequests = v.GetUint32("breaker.max_requests")
	}
	if v.IsSet("breaker.interval_ms") {
		b.Interval = time.Duration(v.GetInt64("breaker.interval_ms")) * time.Millisecond
	}
	if v.IsSet("breaker.timeout_ms") {
		b.Timeout = time.Duration(v.GetInt64("breaker.timeout_ms")) * time.Millisecond
	}
	if v.IsSet("breaker.min_requests") {
		b.MinRequests = v.GetUint32("breaker.min_requests")
	}
	if v.IsSet("breaker.failure_ratio") {
		b.FailureRatio = v.GetFloat64("breaker.failure_ratio")
	}
	return b
}
