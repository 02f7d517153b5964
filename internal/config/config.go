package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
		// APIHost is the public base URL used to build external image links.
		APIHost     string   `yaml:"api_host"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
	} `yaml:"database"`

	Auth struct {
		APIKey        string `yaml:"api_key"`
		JWTSecret     string `yaml:"jwt_secret"`
		APITokenTTL   int    `yaml:"api_token_ttl"`   // minutes
		AdminTokenTTL int    `yaml:"admin_token_ttl"` // minutes
		AdminUsername string `yaml:"admin_username"`
		// AdminPassword may be plain text or a bcrypt hash.
		AdminPassword string `yaml:"admin_password"`
		CookieSecure  bool   `yaml:"cookie_secure"`
	} `yaml:"auth"`

	Storage struct {
		Type       string `yaml:"type"`      // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"` // For local storage
		BaseURL    string `yaml:"base_url"`
		Bucket     string `yaml:"bucket"`
		Region     string `yaml:"region"`
		AccessKey  string `yaml:"access_key"`
		SecretKey  string `yaml:"secret_key"`
		Endpoint   string `yaml:"endpoint"`
		PublicRead bool   `yaml:"public_read"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64 `yaml:"max_size"`       // bytes per request
		MaxImageSide int   `yaml:"max_image_side"` // px, 0 keeps original size
	} `yaml:"upload"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		UseTLS   bool   `yaml:"use_tls"`
	} `yaml:"redis"`

	Poster struct {
		Platforms         []string `yaml:"platforms"`
		Workers           int      `yaml:"workers"`
		MaxAttempts       int      `yaml:"max_attempts"`
		RetryDelay        int      `yaml:"retry_delay"` // seconds
		InternalHostAlias string   `yaml:"internal_host_alias"`
		DownloadTimeout   int      `yaml:"download_timeout"` // seconds
	} `yaml:"poster"`

	Scheduler struct {
		Schedule       string `yaml:"schedule"`
		ProducerBatch  int    `yaml:"producer_batch"`
		CollectorBatch int    `yaml:"collector_batch"`
	} `yaml:"scheduler"`

	Telegram struct {
		BotToken  string `yaml:"bot_token"`
		ChannelID string `yaml:"channel_id"`
	} `yaml:"telegram"`

	Instagram struct {
		Username    string `yaml:"username"`
		Password    string `yaml:"password"`
		SessionFile string `yaml:"session_file"`
	} `yaml:"instagram"`

	Email struct {
		SMTPHost     string   `yaml:"smtp_host"`
		SMTPPort     int      `yaml:"smtp_port"`
		SMTPUser     string   `yaml:"smtp_user"`
		SMTPPassword string   `yaml:"smtp_password"`
		FromEmail    string   `yaml:"from_email"`
		AlertTo      []string `yaml:"alert_to"`
	} `yaml:"email"`
}

var AppConfig *Config

// LoadConfig reads .env, the YAML file at CONFIG_PATH (config/config.yaml by default)
// and finally environment overrides.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	return LoadFrom(configPath)
}

// LoadFrom is LoadConfig with an explicit YAML path. A missing file is not an error.
func LoadFrom(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to read .env: %v", err)
	}

	var cfg Config

	f, err := os.Open(configPath)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using environment only", configPath)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	AppConfig = &cfg
	return &cfg, nil
}

// Default returns a config with every default applied and nothing read from disk or env.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := LoadConfig()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		return cfg
	}
	return AppConfig
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "SERVER_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")
	setString(&cfg.Server.APIHost, "API_HOST")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.Auth.APIKey, "API_KEY")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.AdminUsername, "ADMIN_USERNAME")
	setString(&cfg.Auth.AdminPassword, "ADMIN_PASSWORD")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.BasePath, "STORAGE_PATH")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Username, "REDIS_USERNAME")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.Poster.InternalHostAlias, "INTERNAL_HOST_ALIAS")
	if v := os.Getenv("POSTER_PLATFORMS"); v != "" {
		cfg.Poster.Platforms = cfg.Poster.Platforms[:0]
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Poster.Platforms = append(cfg.Poster.Platforms, p)
			}
		}
	}

	setString(&cfg.Scheduler.Schedule, "SCHEDULE")

	setString(&cfg.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&cfg.Telegram.ChannelID, "TELEGRAM_CHANNEL_ID")

	setString(&cfg.Instagram.Username, "INSTAGRAM_USERNAME")
	setString(&cfg.Instagram.Password, "INSTAGRAM_PASSWORD")
	setString(&cfg.Instagram.SessionFile, "INSTAGRAM_SESSION_FILE")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUser, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.APIHost == "" {
		cfg.Server.APIHost = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	cfg.Server.APIHost = strings.TrimRight(cfg.Server.APIHost, "/")

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}

	if cfg.Auth.APITokenTTL == 0 {
		cfg.Auth.APITokenTTL = 60
	}
	if cfg.Auth.AdminTokenTTL == 0 {
		cfg.Auth.AdminTokenTTL = 120
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./images"
	}

	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 50 * 1024 * 1024
	}
	if cfg.Upload.MaxImageSide == 0 {
		cfg.Upload.MaxImageSide = 2048
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}

	if len(cfg.Poster.Platforms) == 0 {
		cfg.Poster.Platforms = []string{"telegram", "instagram"}
	}
	if cfg.Poster.Workers == 0 {
		cfg.Poster.Workers = 4
	}
	if cfg.Poster.MaxAttempts == 0 {
		cfg.Poster.MaxAttempts = 3
	}
	if cfg.Poster.RetryDelay == 0 {
		cfg.Poster.RetryDelay = 5
	}
	if cfg.Poster.InternalHostAlias == "" {
		cfg.Poster.InternalHostAlias = "nginx:80"
	}
	if cfg.Poster.DownloadTimeout == 0 {
		cfg.Poster.DownloadTimeout = 30
	}

	if cfg.Scheduler.Schedule == "" {
		cfg.Scheduler.Schedule = "*/10 * * * *"
	}
	if cfg.Scheduler.ProducerBatch == 0 {
		cfg.Scheduler.ProducerBatch = 50
	}
	if cfg.Scheduler.CollectorBatch == 0 {
		cfg.Scheduler.CollectorBatch = 100
	}

	if cfg.Instagram.SessionFile == "" {
		cfg.Instagram.SessionFile = "session.json"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("ignoring %s=%q: not an integer", key, v)
		return
	}
	*dst = n
}
