package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	HandlerTimeoutSec int   // per-request context deadline
	MaxBodyMB         int64 // request body cap
	MaxInFlight       int64 // concurrent requests
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
	// File enables rotation through lumberjack when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	CacheTTLSec int    `mapstructure:"cachettlsec"`
}

type DB struct {
	// Driver: mongo | postgres | mysql | memory
	Driver             string
	DSN                string
	Database           string // mongo database name
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	TimeoutSec         int
	AutoMigrate        bool
	LogLevel           string
}

type CORS struct {
	Origins     []string
	Credentials bool
}

// RateLimit is a per-client-IP budget of MaxRequests per WindowMS.
type RateLimit struct {
	WindowMS    int
	MaxRequests int
}

type Chat struct {
	// Provider: openai | gemini
	Provider   string
	APIKey     string
	BaseURL    string
	Model      string
	TimeoutSec int
}

type Config struct {
	App       App
	Log       Log
	JWT       JWT
	DB        DB
	Redis     Redis `mapstructure:"redis"`
	CORS      CORS
	RateLimit RateLimit
	Chat      Chat
}

func (r RateLimit) Window() time.Duration { return time.Duration(r.WindowMS) * time.Millisecond }

func (c Chat) Timeout() time.Duration { return time.Duration(c.TimeoutSec) * time.Second }

func (j JWT) TTL() time.Duration { return time.Duration(j.AccessTokenTTLMin) * time.Minute }

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "glimmr")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 5000)
	v.SetDefault("app.http.readtimeoutsec", 15)
	v.SetDefault("app.http.writetimeoutsec", 60)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.handlertimeoutsec", 45)
	v.SetDefault("app.http.maxbodymb", 50)
	v.SetDefault("app.http.maxinflight", 300)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 5001)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.maxsizemb", 100)
	v.SetDefault("log.maxbackups", 5)
	v.SetDefault("log.maxagedays", 14)
	v.SetDefault("log.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "glimmr")
	v.SetDefault("jwt.accesstokenttlmin", 24*60)

	v.SetDefault("db.driver", "mongo")
	v.SetDefault("db.dsn", "mongodb://localhost:27017")
	v.SetDefault("db.database", "jewelry_store")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxopenconns", 50)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.timeoutsec", 30)
	v.SetDefault("db.automigrate", false)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cachettlsec", 60)

	v.SetDefault("cors.origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.credentials", true)

	v.SetDefault("ratelimit.windowms", 15*60*1000)
	v.SetDefault("ratelimit.maxrequests", 100)

	v.SetDefault("chat.provider", "openai")
	v.SetDefault("chat.apikey", "")
	v.SetDefault("chat.baseurl", "https://api.openai.com/v1")
	v.SetDefault("chat.model", "gpt-4o-mini")
	v.SetDefault("chat.timeoutsec", 30)
}

// legacyEnv keeps the variable names of the previous Node deployment working.
var legacyEnv = map[string]string{
	"app.http.port":         "PORT",
	"db.dsn":                "MONGODB_URI",
	"jwt.secret":            "JWT_SECRET",
	"chat.apikey":           "OPENAI_API_KEY",
	"cors.origins":          "FRONTEND_URL",
	"ratelimit.windowms":    "RATE_LIMIT_WINDOW_MS",
	"ratelimit.maxrequests": "RATE_LIMIT_MAX_REQUESTS",
	"redis.addr":            "REDIS_ADDR",
}

// Load reads the yaml file at path (optional) and overlays APP_* and legacy
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		appEnv := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, appEnv, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// MustLoad is Load for main packages.
func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mongo", "postgres", "mysql", "memory":
	default:
		return fmt.Errorf("config: unsupported db.driver %q", c.DB.Driver)
	}
	switch c.Chat.Provider {
	case "openai", "gemini":
	default:
		return fmt.Errorf("config: unsupported chat.provider %q", c.Chat.Provider)
	}
	if c.RateLimit.WindowMS <= 0 || c.RateLimit.MaxRequests <= 0 {
		return errors.New("config: ratelimit window and max requests must be positive")
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		return errors.New("config: jwt.accessTokenTTLMin must be positive")
	}
	return nil
}
