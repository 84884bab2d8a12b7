package moderation

import (
	"context"
	"testing"
	"time"

	"modcase-bot/internal/storage"
)

func TestDispatchDeniedMakesNoCalls(t *testing.T) {
	gw := newFakeGateway()
	disp := NewDispatcher(gw)
	cfg := storage.GuildConfig{GuildID: "g1", ModeratorRole: "mods"}

	_, err := disp.Dispatch(context.Background(), ActionBan, "g1", "u1", []string{"members"}, cfg)
	if ErrKind(err) != KindForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if gw.mutationCount() != 0 {
		t.Fatal("a denied dispatch must not touch the target")
	}
}

func TestDispatchTimeoutHour(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	gw := newFakeGateway()
	disp := NewDispatcher(gw)
	disp.WithClock(fixedClock{now: now})
	cfg := storage.GuildConfig{GuildID: "g1", ModeratorRole: "mods"}

	confirmation, err := disp.Dispatch(context.Background(), ActionTimeoutHour, "g1", "u1", []string{"mods"}, cfg)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if confirmation != "Timed out for an hour" {
		t.Fatalf("confirmation = %q", confirmation)
	}
	if len(gw.timeouts) != 1 {
		t.Fatalf("timeouts = %d, want 1", len(gw.timeouts))
	}
	if got := gw.timeouts[0].until; !got.Equal(now.Add(time.Hour)) {
		t.Fatalf("timeout until %v, want %v", got, now.Add(time.Hour))
	}
}

func TestDispatchRepeatReapplies(t *testing.T) {
	gw := newFakeGateway()
	disp := NewDispatcher(gw)
	cfg := storage.GuildConfig{GuildID: "g1", ModeratorRole: "mods"}

	for i := 0; i < 2; i++ {
		if _, err := disp.Dispatch(context.Background(), ActionTimeoutMinute, "g1", "u1", []string{"mods"}, cfg); err != nil {
			t.Fatalf("Dispatch #%d: %v", i+1, err)
		}
	}
	if len(gw.timeouts) != 2 {
		t.Fatalf("timeouts = %d, want 2", len(gw.timeouts))
	}
}

func TestDispatchBanPurgesOneDay(t *testing.T) {
	gw := newFakeGateway()
	disp := NewDispatcher(gw)
	cfg := storage.GuildConfig{GuildID: "g1", ModeratorRole: "mods"}

	confirmation, err := disp.Dispatch(context.Background(), ActionBan, "g1", "u1", []string{"mods"}, cfg)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if confirmation != "User banned" {
		t.Fatalf("confirmation = %q", confirmation)
	}
	if len(gw.bans) != 1 || gw.bans[0].purgeDays != 1 {
		t.Fatalf("bans = %+v, want one ban purging a day", gw.bans)
	}
}

func TestActionCustomIDRoundTrip(t *testing.T) {
	id := ActionCustomID(ActionKick, "u42")
	action, target, ok := ParseActionCustomID(id)
	if !ok || action != ActionKick || target != "u42" {
		t.Fatalf("ParseActionCustomID(%q) = %v %q %v", id, action, target, ok)
	}
	if _, _, ok := ParseActionCustomID("modal:whatever"); ok {
		t.Fatal("foreign custom ids must not parse")
	}
}
