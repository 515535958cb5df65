package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	discordMaxQueuedNotices = 8
	discordMaxNoticeChars   = 1000
	discordSendInterval     = 10 * time.Second
)

// discordNotifier pushes occasional miner events (logins, disconnects, chat
// arrivals) to a Discord channel. A nil notifier swallows every call, so
// callers never branch on whether it is configured.
type discordNotifier struct {
	dg        *discordgo.Session
	channelID string

	mu               sync.Mutex
	queue            []string
	droppedNotices   int
	lastDropNoticeAt time.Time
}

// newDiscordNotifier builds the notifier and starts its send loop. Returns
// nil when no token or channel is configured. Messages go out over plain
// REST, no gateway connection is held open.
func newDiscordNotifier(ctx context.Context, token, channelID string) *discordNotifier {
	token = strings.TrimSpace(token)
	channelID = strings.TrimSpace(channelID)
	if token == "" || channelID == "" {
		return nil
	}
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		logger.Warn("discord notifier disabled", "error", err)
		return nil
	}
	n := &discordNotifier{dg: dg, channelID: channelID}
	go n.sendLoop(ctx)
	logger.Info("discord notifier enabled", "channel", channelID)
	return n
}

func (n *discordNotifier) enqueueNotice(msg string) {
	if n == nil {
		return
	}
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	if len(msg) > discordMaxNoticeChars {
		msg = msg[:discordMaxNoticeChars]
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.queue) >= discordMaxQueuedNotices {
		n.droppedNotices++
		return
	}
	n.queue = append(n.queue, "["+minerSoftwareName+"] "+msg)
}

// sendLoop posts at most one message per tick to stay far below Discord's
// rate limits.
func (n *discordNotifier) sendLoop(ctx context.Context) {
	ticker := time.NewTicker(discordSendInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.sendNext()
		}
	}
}

// sendNext peeks the head of the queue and only pops it once the send
// succeeded, so transient Discord trouble never loses a notice.
func (n *discordNotifier) sendNext() {
	n.mu.Lock()
	if len(n.queue) == 0 {
		n.mu.Unlock()
		return
	}
	next := n.queue[0]
	n.mu.Unlock()

	_, err := n.dg.ChannelMessageSendComplex(n.channelID, &discordgo.MessageSend{
		Content:         next,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	})
	if err != nil {
		logger.Warn("discord notify send failed", "error", err)
		if !isDiscordPermanentError(err) {
			return
		}
	}

	n.mu.Lock()
	if len(n.queue) > 0 {
		n.queue = n.queue[1:]
	}
	if n.droppedNotices > 0 {
		now := time.Now()
		if n.lastDropNoticeAt.IsZero() || now.Sub(n.lastDropNoticeAt) >= time.Minute {
			dropped := n.droppedNotices
			n.droppedNotices = 0
			n.lastDropNoticeAt = now
			if len(n.queue) < discordMaxQueuedNotices {
				n.queue = append(n.queue, fmt.Sprintf("[%s] notice backlog full, dropped %d updates", minerSoftwareName, dropped))
			}
		}
	}
	n.mu.Unlock()
}

func isDiscordPermanentError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, discordgo.ErrUnauthorized) {
		return true
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return true
		}
	}
	return false
}
