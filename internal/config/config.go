package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix is prepended to every environment override, e.g. FITFORGE_DATABASE_URL.
const envPrefix = "FITFORGE"

type Config struct {
	Server struct {
		Host           string        `yaml:"host" envconfig:"HOST"`
		Port           int           `yaml:"port" envconfig:"PORT"`
		Env            string        `yaml:"env" envconfig:"ENV"`
		ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
		WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
		AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		DSN          string `yaml:"url" envconfig:"URL"`
		MaxOpenConns int    `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
		MaxIdleConns int    `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" envconfig:"SECRET"`
		TTL    int    `yaml:"ttl" envconfig:"TTL"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host" envconfig:"SMTP_HOST"`
		SMTPPort     int    `yaml:"smtp_port" envconfig:"SMTP_PORT"`
		SMTPUser     string `yaml:"smtp_user" envconfig:"SMTP_USER"`
		SMTPPassword string `yaml:"smtp_password" envconfig:"SMTP_PASSWORD"`
		FromEmail    string `yaml:"from_email" envconfig:"FROM_EMAIL"`
		FromName     string `yaml:"from_name" envconfig:"FROM_NAME"`
	} `yaml:"email"`

	Broker struct {
		URL      string `yaml:"url" envconfig:"URL"`
		Exchange string `yaml:"exchange" envconfig:"EXCHANGE"`
	} `yaml:"broker"`

	FirstAdminEmail string `yaml:"first_admin_email" envconfig:"FIRST_ADMIN_EMAIL"`
}

// Default returns the configuration used when neither the file nor the
// environment says otherwise.
func Default() *Config {
	var cfg Config
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 3000
	cfg.Server.Env = "development"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 15 * time.Second
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 10
	cfg.JWT.TTL = 60
	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "FitForge"
	cfg.Broker.Exchange = "fitforge.events"
	return &cfg
}

// Load builds the configuration in three layers: defaults, the YAML file at
// CONFIG_PATH (config/config.yaml when unset, skipped when missing) and
// FITFORGE_* environment variables. A .env file is read first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	if err := loadFile(configPath, cfg); err != nil {
		return nil, err
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (database.url or FITFORGE_DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (jwt.secret or FITFORGE_JWT_SECRET)")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %d", c.JWT.TTL)
	}
	return nil
}

// Address is the listen address of the HTTP server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

// MailEnabled reports whether applicant notifications can be sent over SMTP.
func (c *Config) MailEnabled() bool {
	return c.Email.SMTPHost != "" && c.Email.FromEmail != ""
}
