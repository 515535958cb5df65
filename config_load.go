package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

func loadConfig(configPath, secretsPath string) Config {
	cfg := defaultConfig()

	if configPath == "" {
		configPath = defaultConfigPath()
	}

	if bc, ok, err := loadBaseConfigFile(configPath); err != nil {
		fatal("config file", err, "path", configPath)
	} else if ok {
		applyBaseConfig(&cfg, *bc)
	} else {
		examplePath := filepath.Join(cfg.DataDir, "config", "examples", "config.toml.example")
		ensureExampleFiles(cfg.DataDir)

		fmt.Printf("\n📝 Configuration file is missing: %s\n\n", configPath)
		fmt.Printf("   To get started:\n")
		fmt.Printf("   1. Copy the example: %s\n", examplePath)
		fmt.Printf("   2. To:               %s\n", configPath)
		fmt.Printf("   3. Edit the file and set your pool address and username\n")
		fmt.Printf("   4. Configure other settings as needed\n")
		fmt.Printf("   5. Restart %s\n\n", minerSoftwareName)

		os.Exit(1)
	}
	ensureExampleFiles(cfg.DataDir)

	if secretsPath == "" {
		secretsPath = filepath.Join(cfg.DataDir, "config", "secrets.toml")
	}
	ensureSecretFilePermissions(secretsPath)
	if sc, ok, err := loadSecretsFile(secretsPath); err != nil {
		fatal("secrets file", err, "path", secretsPath)
	} else if ok {
		applySecretsConfig(&cfg, *sc)
	}

	return cfg
}

func loadTOMLFile[T any](path string) (*T, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg T
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, true, nil
}

func loadBaseConfigFile(path string) (*baseFileConfig, bool, error) {
	return loadTOMLFile[baseFileConfig](path)
}

func loadSecretsFile(path string) (*secretsConfig, bool, error) {
	return loadTOMLFile[secretsConfig](path)
}

func ensureSecretFilePermissions(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("secrets file stat failed", "path", path, "error", err)
		}
		return
	}
	if !info.Mode().IsRegular() {
		return
	}
	if info.Mode().Perm()&0o077 == 0 {
		return
	}
	if err := os.Chmod(path, 0o600); err != nil {
		logger.Warn("secrets file chmod failed", "path", path, "error", err)
		return
	}
	logger.Warn("secrets file permissions tightened", "path", path, "mode", "0600")
}

func applyBaseConfig(cfg *Config, fc baseFileConfig) {
	if fc.Pool.Address != "" {
		cfg.PoolAddress = strings.TrimSpace(fc.Pool.Address)
	}
	if fc.Pool.TLS != nil {
		cfg.PoolTLS = *fc.Pool.TLS
	}
	if fc.Pool.Network != "" {
		cfg.Network = strings.ToLower(strings.TrimSpace(fc.Pool.Network))
	}
	if fc.Identity.Username != "" {
		cfg.Username = strings.TrimSpace(fc.Identity.Username)
	}
	if fc.Identity.Wallet != "" {
		cfg.Wallet = strings.TrimSpace(fc.Identity.Wallet)
	}
	if fc.Identity.RigID != "" {
		cfg.RigID = strings.TrimSpace(fc.Identity.RigID)
	}
	if fc.Identity.Agent != "" {
		cfg.Agent = strings.TrimSpace(fc.Identity.Agent)
	}
	if fc.Mining.Threads != nil {
		cfg.Threads = *fc.Mining.Threads
	}
	if fc.Mining.MaxThreads != nil {
		cfg.MaxThreads = *fc.Mining.MaxThreads
	}
	if fc.Mining.ExcludeHourStart != nil {
		cfg.ExcludeHourStart = *fc.Mining.ExcludeHourStart
	}
	if fc.Mining.ExcludeHourEnd != nil {
		cfg.ExcludeHourEnd = *fc.Mining.ExcludeHourEnd
	}
	if fc.Control.Listen != nil {
		cfg.ControlListen = strings.TrimSpace(*fc.Control.Listen)
	}
	if fc.Storage.DataDir != "" {
		cfg.DataDir = fc.Storage.DataDir
	}
	if fc.Logging.Level != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(fc.Logging.Level))
	}
	if fc.Logging.File != "" {
		cfg.LogFile = fc.Logging.File
	}
}

func applySecretsConfig(cfg *Config, sc secretsConfig) {
	if sc.DiscordToken != "" {
		cfg.DiscordToken = strings.TrimSpace(sc.DiscordToken)
	}
	if sc.DiscordNotifyChannelID != "" {
		cfg.DiscordChannelID = strings.TrimSpace(sc.DiscordNotifyChannelID)
	}
}
