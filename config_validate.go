package main

import (
	"fmt"
	"net"
	"strings"
)

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.PoolAddress) == "" {
		return fmt.Errorf("pool address is required (set [pool].address in config.toml)")
	}
	if _, _, err := net.SplitHostPort(cfg.PoolAddress); err != nil {
		return fmt.Errorf("pool address %q must be host:port: %v", cfg.PoolAddress, err)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Network)) {
	case "", "mainnet", "testnet", "testnet3", "signet", "regtest":
	default:
		return fmt.Errorf("network %q is not recognized (use mainnet, testnet3, signet, or regtest)", cfg.Network)
	}
	if cfg.Threads < 1 {
		return fmt.Errorf("threads must be >= 1, got %d", cfg.Threads)
	}
	if cfg.MaxThreads < 0 {
		return fmt.Errorf("max_threads cannot be negative")
	}
	if cfg.MaxThreads > 0 && cfg.Threads > cfg.MaxThreads {
		return fmt.Errorf("threads=%d exceeds max_threads=%d", cfg.Threads, cfg.MaxThreads)
	}
	if err := validateExcludeHours(cfg.ExcludeHourStart, cfg.ExcludeHourEnd); err != nil {
		return err
	}
	if cfg.ControlListen != "" {
		if _, _, err := net.SplitHostPort(cfg.ControlListen); err != nil {
			return fmt.Errorf("control listen %q must be host:port: %v", cfg.ControlListen, err)
		}
	}
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q is not recognized (use debug, info, warn, or error)", cfg.LogLevel)
	}
	if cfg.DiscordToken != "" && strings.TrimSpace(cfg.DiscordChannelID) == "" {
		return fmt.Errorf("discord_notify_channel_id is required when discord_token is set")
	}
	return nil
}
