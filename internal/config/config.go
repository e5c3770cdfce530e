package config

import (
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DbName            string `mapstructure:"POSTGRES_DB"`
	DbHost            string `mapstructure:"POSTGRES_HOST"`
	DbPort            string `mapstructure:"POSTGRES_PORT"`
	DbUser            string `mapstructure:"POSTGRES_USER"`
	DbPas             string `mapstructure:"POSTGRES_PASSWORD"`
	DbSeed            bool   `mapstructure:"DB_SEED"`
	SeedFile          string `mapstructure:"SEED_FILE"`
	MigrationPath     string `mapstructure:"MIGRATION_PATH"`
	TokenSymmetricKey string `mapstructure:"TOKEN_SYMMETRIC_KEY"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RateLimitCapacity int    `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRate     int    `mapstructure:"RATE_LIMIT_RATE"`
	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic   string `mapstructure:"KAFKA_ORDER_TOPIC"`
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	if configSingleton == nil {
		muonce.Do(func() {
			configSingleton = &ConfigSingleTon{}
			if cf, err := loadConfig(); err == nil {
				configSingleton.Config = cf
			} else {
				log.Fatal("error read config file")
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					configSingleton.mu.Lock()
					configSingleton.Config = cf
					configSingleton.mu.Unlock()
				} else {
					log.Panic("failed to reload config file")
				}
			})
		})
	}
}

func loadConfig() (cf *Config, err error) {
	cf = &Config{}
	viper.SetConfigFile(configFilePath())
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}

	applyDefaults(cf)
	return
}

func configFilePath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return ".env"
}

func applyDefaults(cf *Config) {
	if cf.ServerPort == "" {
		cf.ServerPort = "8080"
	}
	if cf.MigrationPath == "" {
		cf.MigrationPath = "internal/infra/repository/db/migrations"
	}
	if cf.SeedFile == "" {
		cf.SeedFile = "docs/seed.yaml"
	}
	if cf.RateLimitCapacity == 0 {
		cf.RateLimitCapacity = 20
	}
	if cf.RateLimitRate == 0 {
		cf.RateLimitRate = 10
	}
	if cf.KafkaOrderTopic == "" {
		cf.KafkaOrderTopic = "plantshop.order.events"
	}
}
