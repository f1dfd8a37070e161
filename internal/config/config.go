package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game    `yaml:"game"`
	Storage  Storage `yaml:"storage"`
}

type Game struct {
	Mode          string `yaml:"mode" env-default:"pvp"`
	PlayerOneName string `yaml:"player-one-name" env-default:"Player 1"`
	PlayerTwoName string `yaml:"player-two-name" env-default:"Player 2"`
}

type Storage struct {
	Backend    string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	SaveDir    string `yaml:"save-dir" env:"SAVE_DIR"`
	SQLitePath string `yaml:"sqlite-path" env-default:"numtactoe.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
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

// GetSaveDir resolves the snapshot directory, defaulting to the XDG
// data home when the config leaves it empty.
func (that *Storage) GetSaveDir() string {
	if that.SaveDir != "" {
		return that.SaveDir
	}

	return filepath.Join(xdg.DataHome, "numtactoe")
}
