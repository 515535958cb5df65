package main

func buildBaseFileConfig(cfg Config) baseFileConfig {
	return baseFileConfig{
		Pool: poolConfig{
			Address: cfg.PoolAddress,
			TLS:     boolPtr(cfg.PoolTLS),
			Network: cfg.Network,
		},
		Identity: identityConfig{
			Username: cfg.Username,
			Wallet:   cfg.Wallet,
			RigID:    cfg.RigID,
			Agent:    cfg.Agent,
		},
		Mining: miningConfig{
			Threads:          intPtr(cfg.Threads),
			MaxThreads:       intPtr(cfg.MaxThreads),
			ExcludeHourStart: intPtr(cfg.ExcludeHourStart),
			ExcludeHourEnd:   intPtr(cfg.ExcludeHourEnd),
		},
		Control: controlConfig{
			Listen: &cfg.ControlListen,
		},
		Storage: storageConfig{
			DataDir: cfg.DataDir,
		},
		Logging: loggingConfig{
			Level: cfg.LogLevel,
			File:  cfg.LogFile,
		},
	}
}
