// Package config loads client configuration from config file, environment
// and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	// APIURL is the base URL of the remote REST API.
	APIURL string
	// SocketURL is the websocket endpoint the event bridge subscribes to.
	SocketURL string
	// DataDir holds the persisted session grant.
	DataDir string
	Verbose bool
}

// Load reads an optional .ticked config file (yaml, searched in the
// current directory and config home) and TICKED_* environment variables
// over the built-in defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:3000")
	v.SetDefault("socket_url", "ws://localhost:3000")
	v.SetDefault("data_dir", defaultDataDir())

	v.SetConfigName(".ticked")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if cfgHome, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(cfgHome, "ticked"))
	}

	v.SetEnvPrefix("TICKED")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		APIURL:    v.GetString("api_url"),
		SocketURL: v.GetString("socket_url"),
		DataDir:   v.GetString("data_dir"),
		Verbose:   v.GetBool("verbose"),
	}, nil
}

func defaultDataDir() string {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return ".ticked"
	}
	return filepath.Join(cfg, "ticked")
}
