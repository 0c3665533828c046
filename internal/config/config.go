package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Table  TableConfig  `mapstructure:"table"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release
}

type TableConfig struct {
	// ReservedAdminName, when non-empty, lets a player seize banker
	// authority by joining with exactly this display name. Empty disables
	// the override.
	ReservedAdminName string `mapstructure:"reservedAdminName"`
	// DefaultAnte is collected when START_ROUND carries no ante amount.
	DefaultAnte float64 `mapstructure:"defaultAnte"`
}

var GlobalConfig *Config

func LoadConfig(path string) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	GlobalConfig = &cfg
}
