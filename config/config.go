package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type GeminiConfig struct {
	Model         string        `mapstructure:"model"`
	Temperature   float32       `mapstructure:"temperature"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxToolRounds int           `mapstructure:"maxToolRounds"`
	APIKeyEnv     string        `mapstructure:"apiKeyEnv"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Cleanup time.Duration `mapstructure:"cleanup"`
	Redis   struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
}

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Gemini      GeminiConfig `mapstructure:"gemini"`
	Suggestions struct {
		Cache CacheConfig `mapstructure:"cache"`
	} `mapstructure:"suggestions"`
	RateLimit struct {
		RPS   float64 `mapstructure:"rps"`
		Burst int     `mapstructure:"burst"`
		// TrustedProxies may report the client address in X-Forwarded-For.
		TrustedProxies []string `mapstructure:"trustedProxies"`
	} `mapstructure:"rateLimit"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
		// MetricsPort serves /metrics on its own listener. Empty keeps it on
		// the API port.
		MetricsPort string `mapstructure:"metricsPort"`
	} `mapstructure:"observability"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// WANDERSPARK_GEMINI_MODEL overrides gemini.model, and so on.
	v.SetEnvPrefix("wanderspark")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.applyDefaults()
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 90 * time.Second
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.5
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 60 * time.Second
	}
	if c.Gemini.MaxToolRounds == 0 {
		c.Gemini.MaxToolRounds = 4
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GOOGLE_GEMINI_API_KEY"
	}
	if c.Suggestions.Cache.Backend == "" {
		c.Suggestions.Cache.Backend = "memory"
	}
	if c.Suggestions.Cache.TTL == 0 {
		c.Suggestions.Cache.TTL = 30 * time.Minute
	}
	if c.Suggestions.Cache.Cleanup == 0 {
		c.Suggestions.Cache.Cleanup = 10 * time.Minute
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 0.5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 3
	}
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = "wanderspark-api"
	}
}
