package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB

	Prod_env bool

	Postgres struct {
		Host     string
		User     string
		Password string `envconfig:"POSTGRES_PASSWORD"`
		Db_name  string
		Port     uint16
		Ssl_mode string
	}

	Api struct {
		Ipv4  string
		Proto string
	} `toml:"kairo_web"`

	Checkout struct {
		BaseURL string `toml:"base_url"`
	} `toml:"checkout"`

	Webhook struct {
		Secret         string `envconfig:"WEBHOOK_SECRET"`
		QueueSize      int    `toml:"queue_size"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	} `toml:"webhook"`

	Privy struct {
		AppID           string `toml:"app_id"`
		VerificationKey string `envconfig:"PRIVY_VERIFICATION_KEY"`
	} `toml:"privy"`
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	// secrets come from the environment, never from the toml file
	err = envconfig.Process("", &config.Postgres)
	if err != nil {
		panic(err)
	}

	err = envconfig.Process("", &config.Webhook)
	if err != nil {
		panic(err)
	}

	err = envconfig.Process("", &config.Privy)
	if err != nil {
		panic(err)
	}

	if config.Webhook.QueueSize <= 0 {
		config.Webhook.QueueSize = 256
	}
	if config.Webhook.TimeoutSeconds <= 0 {
		config.Webhook.TimeoutSeconds = 5
	}

	return &config
}
