package storage

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestGetGuildConfigDefaults(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetGuildConfig(context.Background(), "g1")
	if err != nil {
		t.Fatalf("get guild config: %v", err)
	}
	if got.GuildID != "g1" {
		t.Fatalf("expected guild id g1, got %q", got.GuildID)
	}
	if got.ModeratorRole != "" || got.CasesChannel != "" || got.DuplicationWebhook != "" {
		t.Fatalf("expected empty defaults, got %+v", got)
	}
}

func TestUpsertGuildConfig(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cfg := GuildConfig{
		GuildID:            "g1",
		ModeratorRole:      "r1",
		CasesChannel:       "c1",
		DuplicationWebhook: "w1",
	}
	if err := store.UpsertGuildConfig(ctx, cfg); err != nil {
		t.Fatalf("upsert guild config: %v", err)
	}

	cfg.CasesChannel = "c2"
	if err := store.UpsertGuildConfig(ctx, cfg); err != nil {
		t.Fatalf("update guild config: %v", err)
	}

	got, err := store.GetGuildConfig(ctx, "g1")
	if err != nil {
		t.Fatalf("get guild config: %v", err)
	}
	if got.CasesChannel != "c2" {
		t.Fatalf("expected channel c2, got %q", got.CasesChannel)
	}
	if got.ModeratorRole != "r1" {
		t.Fatalf("expected role r1, got %q", got.ModeratorRole)
	}
}

func TestSetDuplicationWebhookPreservesOtherFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetModeratorRole(ctx, "g1", "r1"); err != nil {
		t.Fatalf("set moderator role: %v", err)
	}
	if err := store.SetCasesChannel(ctx, "g1", "c1"); err != nil {
		t.Fatalf("set cases channel: %v", err)
	}
	if err := store.SetDuplicationWebhook(ctx, "g1", "w1"); err != nil {
		t.Fatalf("set duplication webhook: %v", err)
	}

	got, err := store.GetGuildConfig(ctx, "g1")
	if err != nil {
		t.Fatalf("get guild config: %v", err)
	}
	if got.ModeratorRole != "r1" || got.CasesChannel != "c1" || got.DuplicationWebhook != "w1" {
		t.Fatalf("unexpected config %+v", got)
	}

	if err := store.SetDuplicationWebhook(ctx, "g1", ""); err != nil {
		t.Fatalf("reset duplication webhook: %v", err)
	}
	got, err = store.GetGuildConfig(ctx, "g1")
	if err != nil {
		t.Fatalf("get guild config: %v", err)
	}
	if got.DuplicationWebhook != "" {
		t.Fatalf("expected webhook reset, got %q", got.DuplicationWebhook)
	}
	if got.ModeratorRole != "r1" {
		t.Fatalf("expected role preserved, got %q", got.ModeratorRole)
	}
}
