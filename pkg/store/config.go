package store

import (
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

type Config interface {
	BasePath() string
	Backend() string
}

// LoadConfig reads .tend.yaml (cwd or TEND_CONFIG_PATH) plus TEND_* env vars.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.tend.db")
	viper.SetDefault("backend", BackendDiskv)
	viper.SetConfigName(".tend") // .yaml is implicit
	viper.SetEnvPrefix("TEND")
	viper.AutomaticEnv()

	if override := os.Getenv("TEND_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("error reading config file: %v", err)
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{Path: path, Driver: viper.GetString("backend")}, nil
}

type fileConfig struct {
	Path   string `json:"path"`
	Driver string `json:"backend"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Backend() string {
	return f.Driver
}
