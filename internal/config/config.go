package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Redis     RedisConfig
	AMQP      AMQPConfig
	Batch     BatchConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// GeneratorConfig selects the external content generator.
// Provider is one of "none", "openai" or "gemini".
type GeneratorConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

// RedisConfig enables the shared batch store when URL is set
type RedisConfig struct {
	URL string
}

// AMQPConfig enables RabbitMQ event publishing when URL is set
type AMQPConfig struct {
	URL string
}

// BatchConfig controls how long generated batches stay retrievable
type BatchConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level string
	JSON  bool
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Reading config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			AllowedOrigins:  splitList(v.GetString("server.allowed_origins")),
		},
		Generator: GeneratorConfig{
			Provider:    strings.ToLower(strings.TrimSpace(v.GetString("generator.provider"))),
			APIKey:      v.GetString("generator.api_key"),
			BaseURL:     v.GetString("generator.base_url"),
			Model:       v.GetString("generator.model"),
			Timeout:     v.GetDuration("generator.timeout"),
			Temperature: float32(v.GetFloat64("generator.temperature")),
			MaxTokens:   v.GetInt("generator.max_tokens"),
		},
		Redis: RedisConfig{URL: v.GetString("redis.url")},
		AMQP:  AMQPConfig{URL: v.GetString("amqp.url")},
		Batch: BatchConfig{TTL: v.GetDuration("batch.ttl")},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	switch c.Generator.Provider {
	case "none", "openai", "gemini":
	default:
		return fmt.Errorf("unknown generator provider %q", c.Generator.Provider)
	}
	if c.Generator.Timeout <= 0 {
		return fmt.Errorf("generator timeout must be positive, got %s", c.Generator.Timeout)
	}
	if c.Batch.TTL <= 0 {
		return fmt.Errorf("batch ttl must be positive, got %s", c.Batch.TTL)
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("generator.provider", "none")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.base_url", "")
	v.SetDefault("generator.model", "")
	v.SetDefault("generator.timeout", 60*time.Second)
	v.SetDefault("generator.temperature", 0.7)
	v.SetDefault("generator.max_tokens", 2048)
	v.SetDefault("redis.url", "")
	v.SetDefault("amqp.url", "")
	v.SetDefault("batch.ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)
}

// splitList parses a comma-separated setting, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
