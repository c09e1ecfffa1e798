package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"0s"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Metrics struct {
	Addr string `yaml:"METRICS_ADDR" env:"METRICS_ADDR" env-default:""`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"production"`
	StatePrefix  string       `yaml:"state_prefix" env:"STATE_PREFIX" env-default:"storefront"`
	API          API          `yaml:"api"`
	RedisConnect RedisConnect `yaml:"redis"`
	Metrics      Metrics      `yaml:"metrics"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}
