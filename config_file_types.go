package main

type poolConfig struct {
	Address string `toml:"address"`
	TLS     *bool  `toml:"tls"`
	Network string `toml:"network"`
}

type identityConfig struct {
	Username string `toml:"username"`
	Wallet   string `toml:"wallet"`
	RigID    string `toml:"rig_id"`
	Agent    string `toml:"agent"`
}

type miningConfig struct {
	Threads          *int `toml:"threads"`
	MaxThreads       *int `toml:"max_threads"`
	ExcludeHourStart *int `toml:"exclude_hour_start"`
	ExcludeHourEnd   *int `toml:"exclude_hour_end"`
}

type controlConfig struct {
	Listen *string `toml:"listen"` // nil = default, "" = disabled
}

type storageConfig struct {
	DataDir string `toml:"data_dir"`
}

type loggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type baseFileConfig struct {
	Pool     poolConfig     `toml:"pool"`
	Identity identityConfig `toml:"identity"`
	Mining   miningConfig   `toml:"mining"`
	Control  controlConfig  `toml:"control"`
	Storage  storageConfig  `toml:"storage"`
	Logging  loggingConfig  `toml:"logging"`
}

// secretsConfig holds values from secrets.toml. This file is gitignored so
// only store sensitive credentials here.
type secretsConfig struct {
	DiscordToken           string `toml:"discord_token"`
	DiscordNotifyChannelID string `toml:"discord_notify_channel_id"`
}
