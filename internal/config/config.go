package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Delivery DeliveryConfig `mapstructure:"delivery"`
	Poll     PollConfig     `mapstructure:"poll"`
	Serve    ServeConfig    `mapstructure:"serve"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SessionConfig struct {
	File string `mapstructure:"file"`
}

// DeliveryConfig holds the delivery-charge step function knobs. Defaults
// match production pricing; overridable so operations can retune without a
// release.
type DeliveryConfig struct {
	FreeThreshold float64 `mapstructure:"free_threshold"`
	Surcharge     float64 `mapstructure:"surcharge"`
	FreeProduct   string  `mapstructure:"free_product"`
}

type PollConfig struct {
	Clock        time.Duration `mapstructure:"clock"`
	PendingEdits time.Duration `mapstructure:"pending_edits"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; defaults reproduce production behavior.
func LoadConfig() (*Config, error) {
	// .env is optional, same convention as the backend deployments
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.oms/")
	v.AddConfigPath("/etc/oms/")

	v.SetEnvPrefix("OMS")
	v.AutomaticEnv()

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("session.file", defaultSessionFile())
	v.SetDefault("delivery.free_threshold", 2500.0)
	v.SetDefault("delivery.surcharge", 350.0)
	v.SetDefault("delivery.free_product", "Moist Curl Leave On Conditioner")
	v.SetDefault("poll.clock", time.Second)
	v.SetDefault("poll.pending_edits", 5*time.Second)
	v.SetDefault("serve.addr", ":8080")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".oms-session"
	}
	return filepath.Join(home, ".oms", "session")
}
