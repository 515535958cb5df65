package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestDiscordNotifier_NilAndUnconfigured(t *testing.T) {
	var n *discordNotifier
	n.enqueueNotice("goes nowhere") // nil receiver is a no-op

	ctx := context.Background()
	if got := newDiscordNotifier(ctx, "", "123"); got != nil {
		t.Fatalf("missing token should disable notifier")
	}
	if got := newDiscordNotifier(ctx, "tok", ""); got != nil {
		t.Fatalf("missing channel should disable notifier")
	}
	if got := newDiscordNotifier(ctx, "   ", "   "); got != nil {
		t.Fatalf("blank credentials should disable notifier")
	}
}

func TestDiscordNotifier_QueueBehavior(t *testing.T) {
	n := &discordNotifier{channelID: "123"}

	n.enqueueNotice("   ")
	if len(n.queue) != 0 {
		t.Fatalf("blank notice queued")
	}

	n.enqueueNotice("  logged in as ann  ")
	if len(n.queue) != 1 {
		t.Fatalf("queue len %d", len(n.queue))
	}
	want := "[" + minerSoftwareName + "] logged in as ann"
	if n.queue[0] != want {
		t.Fatalf("queued %q want %q", n.queue[0], want)
	}

	for i := len(n.queue); i < discordMaxQueuedNotices; i++ {
		n.enqueueNotice(fmt.Sprintf("notice %d", i))
	}
	if len(n.queue) != discordMaxQueuedNotices {
		t.Fatalf("queue len %d want %d", len(n.queue), discordMaxQueuedNotices)
	}

	n.enqueueNotice("one too many")
	if len(n.queue) != discordMaxQueuedNotices {
		t.Fatalf("overfull queue grew to %d", len(n.queue))
	}
	if n.droppedNotices != 1 {
		t.Fatalf("droppedNotices %d want 1", n.droppedNotices)
	}

	over := &discordNotifier{channelID: "123"}
	over.enqueueNotice(strings.Repeat("x", discordMaxNoticeChars+50))
	wantLen := len("["+minerSoftwareName+"] ") + discordMaxNoticeChars
	if len(over.queue[0]) != wantLen {
		t.Fatalf("truncated notice len %d want %d", len(over.queue[0]), wantLen)
	}
}

func TestIsDiscordPermanentError(t *testing.T) {
	restErr := func(status int) error {
		return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
	}
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("socket closed"), false},
		{"unauthorized sentinel", discordgo.ErrUnauthorized, true},
		{"wrapped unauthorized", fmt.Errorf("send: %w", discordgo.ErrUnauthorized), true},
		{"rest 400", restErr(http.StatusBadRequest), true},
		{"rest 403", restErr(http.StatusForbidden), true},
		{"rest 404", restErr(http.StatusNotFound), true},
		{"rest 429", restErr(http.StatusTooManyRequests), false},
		{"rest 500", restErr(http.StatusInternalServerError), false},
		{"rest without response", &discordgo.RESTError{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isDiscordPermanentError(tc.err); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}
