package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	SMS struct {
		APIKey   string `yaml:"api_key"`
		SenderID string `yaml:"sender_id"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"sms"`

	Chapa struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
		BaseURL       string `yaml:"base_url"`
	} `yaml:"chapa"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

// LoadConfig reads config.yaml unless DATABASE_URL is set, in which case
// everything comes from environment variables. The env path is what tests
// and container deployments use.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60 * 24

	cfg.Email.SMTPHost = os.Getenv("EMAIL_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("EMAIL_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("EMAIL_USER")
	cfg.Email.SMTPPassword = os.Getenv("EMAIL_PASS")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Email.FromName = "Gebeya"

	cfg.SMS.APIKey = os.Getenv("GEEZSMS_API_KEY")
	cfg.SMS.SenderID = os.Getenv("GEEZSMS_SENDER_ID")
	cfg.SMS.BaseURL = os.Getenv("GEEZSMS_BASE_URL")

	cfg.Chapa.SecretKey = os.Getenv("CHAPA_SECRET_KEY")
	cfg.Chapa.WebhookSecret = os.Getenv("CHAPA_WEBHOOK_SECRET")
	cfg.Chapa.BaseURL = os.Getenv("CHAPA_BASE_URL")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	AppConfig = &cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
