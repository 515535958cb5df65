package main

import "time"

// Login result codes. Positive non-1 values are rejections the caller must
// fix before retrying; negative values are retryable transport failures.
const (
	loginCodeSuccess          = 1
	loginCodeBadUsername      = 2
	loginCodeBadWallet        = 3
	loginCodeConnectionFailed = -1
	loginCodeLoginTimeout     = -2
	loginCodeTransportFailure = -3
)

// InitMiner result codes. 2 means mining runs without large-page scratch
// memory at reduced batch size.
const (
	initCodeSuccess        = 1
	initCodeNoHugepages    = 2
	initCodeBadHourRange   = 3
	initCodeBadThreadCount = 4
	initCodeAlreadyInit    = 5
	initCodeFatal          = -1
)

const (
	maxPoolMessageSize = 64 * 1024
	poolDialTimeout    = 10 * time.Second
	poolWriteTimeout   = 30 * time.Second
	// loginReadTimeout bounds how long Login blocks waiting for the pool's
	// verdict before surfacing a retryable code.
	loginReadTimeout  = 30 * time.Second
	keepaliveInterval = 60 * time.Second

	// Reconnect backoff after a connection that had logged in successfully
	// drops: base doubles up to the cap, reset on the next success.
	reconnectBackoffBase = 3 * time.Second
	reconnectBackoffMax  = 60 * time.Second

	statsRefreshInterval = 2 * time.Minute
	activityTickInterval = 1 * time.Minute

	// minHashrateSample is the shortest observation window that produces a
	// meaningful recent-hashrate figure. Below it the snapshot reports the
	// negative placeholder instead of a noisy estimate.
	minHashrateSample = 5 * time.Second

	// Nonce attempts per worker batch. Workers re-check the activity state
	// and current job between batches, so this bounds pause latency.
	hashBatchSize = 50_000
	// Batch size when large-page scratch memory is unavailable.
	hashBatchSizeDegraded = hashBatchSize / 2

	// Concurrent in-flight share submissions across all workers.
	maxConcurrentSubmits = 4

	// Accepted shares whose achieved difficulty reaches this multiple of the
	// share target are worth a notifier mention.
	shareNoticeDiffMultiple = 100

	maxChatMessageLen = 1024

	stateCacheTTL = 1 * time.Second
)

const minerSoftwareName = "goMiner"
