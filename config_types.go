package main

var secretsConfigExample = []byte(`# Optional Discord notifications integration.
# The bot token only needs permission to post in the notify channel.
# discord_token = "YOUR_DISCORD_BOT_TOKEN"
# discord_notify_channel_id = "123456789012345678"
`)

type Config struct {
	// Pool endpoint.
	PoolAddress string // host:port of the pool RPC endpoint
	PoolTLS     bool
	Network     string // wallet address network: mainnet, testnet3, signet, regtest

	// Identity offered to the pool on the automatic startup login.
	// The control API can log in with different credentials at any time.
	Username string
	Wallet   string
	RigID    string // empty = reuse persisted id, or generate one
	Agent    string // empty = built-in name/version

	// Mining behavior.
	Threads          int
	MaxThreads       int // hard cap on thread count; 0 = all CPUs
	ExcludeHourStart int // [start,end) local hours with mining paused; start==end disables
	ExcludeHourEnd   int

	// Control API.
	ControlListen string // empty = disabled

	// Discord notifications.
	DiscordToken     string // store in secrets.toml
	DiscordChannelID string

	DataDir  string
	LogLevel string // debug, info, warn, error
	LogFile  string // empty = stderr only
}

type EffectiveConfig struct {
	PoolAddress      string `json:"pool_address"`
	PoolTLS          bool   `json:"pool_tls"`
	Network          string `json:"network"`
	Username         string `json:"username,omitempty"`
	Wallet           string `json:"wallet,omitempty"`
	RigID            string `json:"rig_id,omitempty"`
	Agent            string `json:"agent,omitempty"`
	Threads          int    `json:"threads"`
	MaxThreads       int    `json:"max_threads,omitempty"`
	ExcludeHourStart int    `json:"exclude_hour_start,omitempty"`
	ExcludeHourEnd   int    `json:"exclude_hour_end,omitempty"`
	ControlListen    string `json:"control_listen,omitempty"`
	DiscordTokenSet  bool   `json:"discord_token_set"`
	DiscordChannelID string `json:"discord_notify_channel_id,omitempty"`
	DataDir          string `json:"data_dir"`
	LogLevel         string `json:"log_level,omitempty"`
	LogFile          string `json:"log_file,omitempty"`
}

func (cfg Config) Effective() EffectiveConfig {
	return EffectiveConfig{
		PoolAddress:      cfg.PoolAddress,
		PoolTLS:          cfg.PoolTLS,
		Network:          cfg.Network,
		Username:         cfg.Username,
		Wallet:           cfg.Wallet,
		RigID:            cfg.RigID,
		Agent:            cfg.Agent,
		Threads:          cfg.Threads,
		MaxThreads:       cfg.MaxThreads,
		ExcludeHourStart: cfg.ExcludeHourStart,
		ExcludeHourEnd:   cfg.ExcludeHourEnd,
		ControlListen:    cfg.ControlListen,
		DiscordTokenSet:  cfg.DiscordToken != "",
		DiscordChannelID: cfg.DiscordChannelID,
		DataDir:          cfg.DataDir,
		LogLevel:         cfg.LogLevel,
		LogFile:          cfg.LogFile,
	}
}
