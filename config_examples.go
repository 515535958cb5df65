package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

func ensureExampleFiles(dataDir string) {
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	examplesDir := filepath.Join(dataDir, "config", "examples")
	if err := os.MkdirAll(examplesDir, 0o755); err != nil {
		logger.Warn("create examples directory for example configs failed", "dir", examplesDir, "error", err)
		return
	}

	ensureExampleFile(filepath.Join(examplesDir, "config.toml.example"), exampleConfigBytes())
	ensureExampleFile(filepath.Join(examplesDir, "secrets.toml.example"), secretsConfigExample)
}

func ensureExampleFile(path string, contents []byte) {
	if len(contents) == 0 {
		return
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		logger.Warn("write example config failed", "path", path, "error", err)
	}
}

func withPrependedTOMLComments(data []byte, parts ...[]byte) []byte {
	total := len(data)
	for _, part := range parts {
		total += len(part)
	}
	out := make([]byte, 0, total)
	for _, part := range parts {
		out = append(out, part...)
	}
	out = append(out, data...)
	return out
}

func exampleHeader(text string) []byte {
	return fmt.Appendf(nil, "# Generated %s example (copy to a real config and edit as needed)\n\n", text)
}

func baseConfigDocComments() []byte {
	return []byte(`# Key notes
# - [pool].address: host:port of the pool RPC endpoint (required).
# - [pool].tls: Connect with TLS; enable for pools reached over the internet.
# - [pool].network: Wallet address network: mainnet, testnet3, signet, regtest.
# - [identity].username: Pool username used for the automatic login on startup.
# - [identity].wallet: Optional payout wallet; sent to the pool as wallet.username.
# - [identity].rig_id: Stable rig name; empty reuses the persisted id or generates one.
# - [mining].threads: Worker threads to start with.
# - [mining].max_threads: Hard cap on threads; 0 = all CPUs.
# - [mining].exclude_hour_start / exclude_hour_end: Local hours [start,end) with
#   mining paused; equal values disable the window.
# - [control].listen: HTTP control API listener; "" disables it.
# - [storage].data_dir: State database and config directory root.
#
# Logging
# - [logging].level: debug, info, warn, error.
# - [logging].file: Log file path; empty logs to stderr only.
#
`)
}

func exampleConfigBytes() []byte {
	cfg := defaultConfig()
	cfg.PoolAddress = "YOUR_POOL_HOST:PORT"
	cfg.Username = "YOUR_POOL_USERNAME"
	fc := buildBaseFileConfig(cfg)
	data, err := toml.Marshal(fc)
	if err != nil {
		logger.Warn("encode config example failed", "error", err)
		return nil
	}
	return withPrependedTOMLComments(data, exampleHeader("base config"), baseConfigDocComments())
}
