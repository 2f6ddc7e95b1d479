package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// REST backend the gateways talk to.
	BackendBaseURL        string `mapstructure:"BACKEND_BASE_URL"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisWizardDB  int    `mapstructure:"REDIS_WIZARD_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Wizard and session lifetimes.
	WizardStore      string `mapstructure:"WIZARD_STORE"` // redis | mongo | memory
	WizardTTLMinutes int    `mapstructure:"WIZARD_TTL_MINUTES"`
	SessionTTLHours  int    `mapstructure:"SESSION_TTL_HOURS"`

	// Only used when WIZARD_STORE=mongo.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	CORSOrigins      string `mapstructure:"CORS_ORIGINS"`
	SessionCookie    string `mapstructure:"SESSION_COOKIE"`
	LoginPath        string `mapstructure:"LOGIN_PATH"`
	ConfirmationPath string `mapstructure:"CONFIRMATION_PATH"`

	// Invoice issuer.
	CompanyName    string `mapstructure:"COMPANY_NAME"`
	CompanyAddress string `mapstructure:"COMPANY_ADDRESS"`
	Currency       string `mapstructure:"CURRENCY"`

	NotifyConfirmations bool `mapstructure:"NOTIFY_CONFIRMATIONS"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	v.SetDefault("BACKEND_BASE_URL", "http://localhost:8000")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("REDIS_WIZARD_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("WIZARD_STORE", "redis")
	v.SetDefault("WIZARD_TTL_MINUTES", 30)
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "workshop")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("SESSION_COOKIE", "workshop_session")
	v.SetDefault("LOGIN_PATH", "/login")
	v.SetDefault("CONFIRMATION_PATH", "/booking/confirmation")
	v.SetDefault("COMPANY_NAME", "Workshop Car Detailing")
	v.SetDefault("COMPANY_ADDRESS", "")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("NOTIFY_CONFIRMATIONS", false)
}

// Load reads configuration from .env, config.yaml and the environment into a Config.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig loads the configuration into AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
