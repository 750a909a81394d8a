package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Google   GoogleConfig   `mapstructure:"google"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Export   ExportConfig   `mapstructure:"export"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Port        int    `mapstructure:"port"`
	Env         string `mapstructure:"env"`
	BaseURL     string `mapstructure:"base_url"`
	FrontendURL string `mapstructure:"frontend_url"` // Where OAuth callbacks redirect the browser
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GoogleConfig holds the OAuth client and API endpoints of the calendar provider.
// Endpoints are overridable so tests and sandboxes can point at fakes; empty
// auth/token URLs fall back to Google's.
type GoogleConfig struct {
	ClientID         string        `mapstructure:"client_id"`
	ClientSecret     string        `mapstructure:"client_secret"`
	RedirectURL      string        `mapstructure:"redirect_url"`
	AuthURL          string        `mapstructure:"auth_url"`
	TokenURL         string        `mapstructure:"token_url"`
	CalendarEndpoint string        `mapstructure:"calendar_endpoint"`
	TasksEndpoint    string        `mapstructure:"tasks_endpoint"`
	TimeZone         string        `mapstructure:"time_zone"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

type OAuthConfig struct {
	StateTTL time.Duration `mapstructure:"state_ttl"`
}

type ExportConfig struct {
	Concurrency       int     `mapstructure:"concurrency"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type PlannerConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "goal-tracker")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.frontend_url", "http://localhost:3000")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("google.time_zone", "UTC")
	v.SetDefault("google.timeout", 30) // seconds

	v.SetDefault("oauth.state_ttl", 600) // seconds

	v.SetDefault("export.concurrency", 4)
	v.SetDefault("export.requests_per_second", 5.0)
	v.SetDefault("export.burst", 10)

	v.SetDefault("planner.model", "gpt-4o")
	v.SetDefault("planner.timeout", 120) // seconds

	v.SetDefault("logging.level", "info")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Running purely from environment variables is fine
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Durations are configured in seconds
	cfg.Google.Timeout = cfg.Google.Timeout * time.Second
	cfg.OAuth.StateTTL = cfg.OAuth.StateTTL * time.Second
	cfg.Planner.Timeout = cfg.Planner.Timeout * time.Second

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
