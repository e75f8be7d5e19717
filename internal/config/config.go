package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultModelID is the Bedrock model used when MODEL_ID is not set.
const DefaultModelID = "us.amazon.nova-lite-v1:0"

type Config struct {
	Address        string        `mapstructure:"address"`
	Provider       string        `mapstructure:"provider"`
	ModelID        string        `mapstructure:"model_id"`
	Region         string        `mapstructure:"region"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	GuardrailsPath string        `mapstructure:"guardrails_path"`
	// TelemetryEndpoint is the OTLP/HTTP collector, either host:port or a
	// full URL such as http://collector:4318/v1/traces. Empty disables tracing.
	TelemetryEndpoint string `mapstructure:"telemetry_endpoint"`
	MetricsPath       string `mapstructure:"metrics_path"`
	LogLevel          string `mapstructure:"log_level"`
	LogFormat         string `mapstructure:"log_format"`
}

func Load() (*Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("address", ":8000")
	v.SetDefault("provider", "bedrock")
	v.SetDefault("model_id", DefaultModelID)
	v.SetDefault("region", "us-east-1")
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("guardrails_path", "")
	v.SetDefault("telemetry_endpoint", "")
	v.SetDefault("metrics_path", "/metrics")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// allow environment variables like RELAY_ADDRESS
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed names kept for deployments of the original relay
	if err := v.BindEnv("model_id", "RELAY_MODEL_ID", "MODEL_ID"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("region", "RELAY_REGION", "AWS_REGION"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// don't fail if config file is missing, allow env-only config
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the relay cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelID) == "" {
		return errors.New("model_id must not be empty")
	}
	if strings.TrimSpace(c.Region) == "" {
		return errors.New("region must not be empty")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return errors.New("metrics_path must start with /")
	}
	return nil
}
