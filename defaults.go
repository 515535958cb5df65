package main

import (
	"path/filepath"
)

const (
	defaultDataDir       = "data"
	defaultControlListen = "127.0.0.1:9090"
)

func defaultConfig() Config {
	return Config{
		Network:       "mainnet",
		Threads:       1,
		ControlListen: defaultControlListen,
		DataDir:       defaultDataDir,
		LogLevel:      "info",
	}
}

func defaultConfigPath() string {
	return filepath.Join(defaultDataDir, "config", "config.toml")
}
