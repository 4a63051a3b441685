package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	RoomTTL  time.Duration `yaml:"room-ttl" env:"ROOM_TTL" env-default:"6h"`
	Redis    Redis         `yaml:"redis"`
	Gemini   Gemini        `yaml:"gemini"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Gemini - settings of the riddle generator. APIKey is optional: players bring their own key,
// the server key is only a fallback for narrators who leave the field empty.
type Gemini struct {
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	APIKey string `yaml:"api-key" env:"GEMINI_API_KEY" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
