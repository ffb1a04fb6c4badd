package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HistoryBackendFile   = "file"
	HistoryBackendRedis  = "redis"
	HistoryBackendSQLite = "sqlite"
)

var ErrUnknownHistoryBackend = errors.New("unknown history backend")

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	History           History `yaml:"history"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./data/history.db"`
}

type History struct {
	Backend  string `yaml:"backend" env:"HISTORY_BACKEND" env-default:"file"`
	Key      string `yaml:"key" env:"HISTORY_KEY" env-default:"default"`
	FilePath string `yaml:"file-path" env:"HISTORY_FILE_PATH" env-default:"./data/history.json"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, overridden by the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads the file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, err
	}

	if err = config.History.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *History) validate() error {
	switch that.Backend {
	case HistoryBackendFile, HistoryBackendRedis, HistoryBackendSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHistoryBackend, that.Backend)
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
