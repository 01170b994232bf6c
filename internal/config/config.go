package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const defaultConfigPath = "config/config.yaml"

type ServerConfig struct {
	Host            string   `yaml:"host" env:"SERVER_HOST"`
	Port            int      `yaml:"port" env:"SERVER_PORT"`
	Env             string   `yaml:"env" env:"SERVER_ENV"`
	ShutdownTimeout int      `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"` // секунды
	CORSOrigins     []string `yaml:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`
	Swagger         bool     `yaml:"swagger" env:"SERVER_SWAGGER"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"url" env:"DATABASE_URL"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	AutoMigrate  bool   `yaml:"auto_migrate" env:"DATABASE_AUTO_MIGRATE"`
}

type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET"`
	TTL    int    `yaml:"ttl" env:"JWT_TTL"` // минуты
}

type EmailConfig struct {
	Enabled      bool   `yaml:"enabled" env:"EMAIL_ENABLED"`
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
	SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	FromEmail    string `yaml:"from_email" env:"EMAIL_FROM"`
	FromName     string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	UseTLS       bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	AppURL       string `yaml:"app_url" env:"APP_URL"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// PolicyConfig - переключатели спорных бизнес-правил
type PolicyConfig struct {
	ResetApprovalOnEdit bool `yaml:"reset_approval_on_edit" env:"POLICY_RESET_APPROVAL_ON_EDIT"`
	OpenInterestListing bool `yaml:"open_interest_listing" env:"POLICY_OPEN_INTEREST_LISTING"`
}

type AdminConfig struct {
	Email    string `yaml:"email" env:"ADMIN_EMAIL"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	Name     string `yaml:"name" env:"ADMIN_NAME"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Email     EmailConfig     `yaml:"email"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Policy    PolicyConfig    `yaml:"policy"`
	Admin     AdminConfig     `yaml:"admin"`
}

var AppConfig *Config

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"
	cfg.Server.ShutdownTimeout = 10
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Server.Swagger = true

	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.AutoMigrate = true

	cfg.JWT.TTL = 60 * 24

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "CollabHub"

	cfg.RateLimit.RPS = 5
	cfg.RateLimit.Burst = 10

	cfg.Policy.ResetApprovalOnEdit = true
	cfg.Policy.OpenInterestListing = false

	cfg.Admin.Name = "Administrator"
	return cfg
}

// Load собирает конфигурацию слоями: значения по умолчанию, YAML файл,
// .env и переменные окружения. Отсутствие файла по умолчанию не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// работаем на окружении
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.url is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rate_limit values must not be negative"))
	}
	if c.Email.Enabled && c.Email.SMTPHost == "" {
		errs = append(errs, errors.New("email.smtp_host is required when email is enabled"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeout) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

// LoadConfig загружает конфигурацию из CONFIG_PATH в AppConfig
func LoadConfig() error {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

func GetConfig() *Config {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			panic(err)
		}
	}
	return AppConfig
}
