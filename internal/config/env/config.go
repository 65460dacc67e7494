package env

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	Web struct {
		Port    int  `mapstructure:"port"`
		Prefork bool `mapstructure:"prefork"`
		Cors    struct {
			AllowOrigins string `mapstructure:"allow_origins"`
		} `mapstructure:"cors"`
	} `mapstructure:"web"`
	JWT struct {
		Secret                  string `mapstructure:"secret"`
		RefreshSecret           string `mapstructure:"refresh_secret"`
		ResetSecret             string `mapstructure:"reset_secret"`
		AccessExpirationMinutes int    `mapstructure:"access_expiration_minutes"`
		RefreshExpirationDays   int    `mapstructure:"refresh_expiration_days"`
		ResetExpirationMinutes  int    `mapstructure:"reset_expiration_minutes"`
	} `mapstructure:"jwt"`
	Log struct {
		Level int `mapstructure:"level"`
	} `mapstructure:"log"`
	Database struct {
		DSN  string `mapstructure:"dsn"`
		Pool struct {
			Idle     int `mapstructure:"idle"`
			Max      int `mapstructure:"max"`
			Lifetime int `mapstructure:"lifetime"`
		} `mapstructure:"pool"`
		Log struct {
			Level int `mapstructure:"level"`
		} `mapstructure:"log"`
	} `mapstructure:"database"`
	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Pool     struct {
			Size        int `mapstructure:"size"`
			MinIdle     int `mapstructure:"min_idle"`
			MaxIdle     int `mapstructure:"max_idle"`
			Lifetime    int `mapstructure:"lifetime"`
			IdleTimeout int `mapstructure:"idle_timeout"`
		} `mapstructure:"pool"`
	} `mapstructure:"redis"`
	Mail struct {
		ResetURL string `mapstructure:"reset_url"`
	} `mapstructure:"mail"`
	Monitoring struct {
		Otel struct {
			Host string `mapstructure:"host"`
		} `mapstructure:"otel"`
	} `mapstructure:"monitoring"`
}

func NewConfig() *Config {
	config := viper.New()

	// Set configuration file details
	config.SetConfigName("config")
	config.SetConfigType("yml")
	config.AddConfigPath("./../")
	config.AddConfigPath("./")
	config.AutomaticEnv()

	// Read the configuration file
	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error reading config file: %w", err))
	}

	// Unmarshal into the Config struct
	cfg := new(Config)
	if err := config.Unmarshal(cfg); err != nil {
		panic(fmt.Errorf("fatal error unmarshaling config: %w", err))
	}

	return cfg
}

func (c *Config) GetAccessSecret() string  { return c.JWT.Secret }
func (c *Config) GetRefreshSecret() string { return c.JWT.RefreshSecret }
func (c *Config) GetResetSecret() string   { return c.JWT.ResetSecret }

func (c *Config) GetAccessTokenExpiration() time.Duration {
	return time.Duration(c.JWT.AccessExpirationMinutes) * time.Minute
}

func (c *Config) GetRefreshTokenExpiration() time.Duration {
	return time.Duration(c.JWT.RefreshExpirationDays) * 24 * time.Hour
}

func (c *Config) GetResetTokenExpiration() time.Duration {
	return time.Duration(c.JWT.ResetExpirationMinutes) * time.Minute
}
