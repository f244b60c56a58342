package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel      string `yaml:"log_level" env:"ADMISSIBLE_LOG_LEVEL"`
	LogJSON       bool   `yaml:"log_json" env:"ADMISSIBLE_LOG_JSON"`
	SecureCookies bool   `yaml:"secure_cookies" env:"ADMISSIBLE_SECURE_COOKIES"`

	API      API      `yaml:"api"`
	Frontend Frontend `yaml:"frontend"`
	Upstream Upstream `yaml:"upstream"`
	Activity Activity `yaml:"activity"`
}

// API is the gateway that fronts the auth provider.
type API struct {
	Addr           string   `yaml:"addr" env:"ADMISSIBLE_API_ADDR" validate:"required"`
	MetricsAddr    string   `yaml:"metrics_addr" env:"ADMISSIBLE_API_METRICS_ADDR"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ADMISSIBLE_API_ALLOWED_ORIGINS" envSeparator:","`
	// TrustedProxies may set X-Forwarded-For (addresses or CIDRs, e.g. the frontend).
	TrustedProxies []string `yaml:"trusted_proxies" env:"ADMISSIBLE_API_TRUSTED_PROXIES" envSeparator:"," validate:"dive,ip|cidr"`
	HelloMessage   string   `yaml:"hello_message" env:"ADMISSIBLE_HELLO_MESSAGE"`
}

type Frontend struct {
	Addr             string        `yaml:"addr" env:"ADMISSIBLE_FRONTEND_ADDR" validate:"required"`
	MetricsAddr      string        `yaml:"metrics_addr" env:"ADMISSIBLE_FRONTEND_METRICS_ADDR"`
	APIBaseURL       string        `yaml:"api_base_url" env:"ADMISSIBLE_API_BASE_URL" validate:"required,url"`
	RefreshThreshold time.Duration `yaml:"refresh_threshold" env:"ADMISSIBLE_REFRESH_THRESHOLD"`
	ActivityLimit    int           `yaml:"activity_limit" env:"ADMISSIBLE_ACTIVITY_LIMIT" validate:"gte=0,lte=50"`
}

// Upstream describes where the auth provider's endpoints live.
type Upstream struct {
	BaseURL string        `yaml:"base_url" env:"ADMISSIBLE_UPSTREAM_URL" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env:"ADMISSIBLE_UPSTREAM_TIMEOUT"`
}

type Activity struct {
	Driver string `yaml:"driver" env:"ADMISSIBLE_ACTIVITY_DRIVER" validate:"oneof=memory sqlite postgres"`
	Path   string `yaml:"path" env:"ADMISSIBLE_ACTIVITY_PATH"` // sqlite file
	Pg     Pg     `yaml:"pg"`

	// Events older than Retention are swept every SweepInterval.
	Retention     time.Duration `yaml:"retention" env:"ADMISSIBLE_ACTIVITY_RETENTION"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"ADMISSIBLE_ACTIVITY_SWEEP_INTERVAL"`
}

type Pg struct {
	Host   string `yaml:"host" env:"ADMISSIBLE_PG_HOST"`
	Port   int    `yaml:"port" env:"ADMISSIBLE_PG_PORT"`
	Dbname string `yaml:"dbname" env:"ADMISSIBLE_PG_DBNAME"`
}

type Private struct {
	PgUser      string `yaml:"pg_user" env:"ADMISSIBLE_PG_USER"`
	PgPassword  string `yaml:"pg_password" env:"ADMISSIBLE_PG_PASSWORD"`
	ActivityKey string `yaml:"activity_key" env:"ADMISSIBLE_ACTIVITY_KEY"` // base64, keys the email hash in activity events
}

const (
	DefaultRefreshThreshold = 2 * time.Minute
	DefaultUpstreamTimeout  = 5 * time.Second
	DefaultActivityLimit    = 5
	DefaultHelloMessage     = "Hello from a protected Lambda"
	DefaultRetention        = 30 * 24 * time.Hour
	DefaultSweepInterval    = time.Hour
)

func (c *Config) RefreshThreshold() time.Duration {
	return c.Public.Frontend.RefreshThreshold
}

func (c *Config) UpstreamTimeout() time.Duration {
	return c.Public.Upstream.Timeout
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

func (c *Config) setDefaults() {
	if c.Public.Frontend.RefreshThreshold == 0 {
		c.Public.Frontend.RefreshThreshold = DefaultRefreshThreshold
	}
	if c.Public.Frontend.ActivityLimit == 0 {
		c.Public.Frontend.ActivityLimit = DefaultActivityLimit
	}
	if c.Public.Upstream.Timeout == 0 {
		c.Public.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if c.Public.API.HelloMessage == "" {
		c.Public.API.HelloMessage = DefaultHelloMessage
	}
	if c.Public.Activity.Retention == 0 {
		c.Public.Activity.Retention = DefaultRetention
	}
	if c.Public.Activity.SweepInterval == 0 {
		c.Public.Activity.SweepInterval = DefaultSweepInterval
	}
	if c.Public.Activity.Driver == "" {
		c.Public.Activity.Driver = "memory"
	}
}

// Load reads public.yaml and private.yaml from configFolder, applies
// environment overrides and validates the result.
func Load(configFolder string) (*Config, error) {
	var cfg Config
	mustLoadPath(path.Join(configFolder, "public.yaml"), &cfg.Public)
	mustLoadPath(path.Join(configFolder, "private.yaml"), &cfg.Private)

	if err := env.Parse(&cfg.Public); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := env.Parse(&cfg.Private); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.setDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Public.Activity.Driver == "sqlite" && cfg.Public.Activity.Path == "" {
		return nil, fmt.Errorf("invalid config: activity.path is required for the sqlite driver")
	}
	if cfg.Public.Activity.Driver == "postgres" && cfg.Public.Activity.Pg.Host == "" {
		return nil, fmt.Errorf("invalid config: activity.pg.host is required for the postgres driver")
	}
	return &cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}
