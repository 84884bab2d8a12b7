package storage

import (
	"context"
	"testing"
	"time"
)

func TestCaseEventsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	events := []CaseEvent{
		{GuildID: "g1", ActorID: "mod1", TargetID: "u1", Event: "case_opened", Details: "Spam", CreatedAt: base},
		{GuildID: "g1", ActorID: "mod1", TargetID: "u1", Event: "action", Details: "timeout_1h", CreatedAt: base.Add(time.Minute)},
		{GuildID: "g2", ActorID: "mod2", TargetID: "u2", Event: "action", Details: "ban", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, event := range events {
		if err := store.AddCaseEvent(ctx, event); err != nil {
			t.Fatalf("add case event: %v", err)
		}
	}

	got, err := store.ListCaseEvents(ctx, "g1", 10)
	if err != nil {
		t.Fatalf("list case events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Event != "action" || got[0].Details != "timeout_1h" {
		t.Fatalf("newest event = %+v, want the timeout", got[0])
	}
	if got[1].Event != "case_opened" {
		t.Fatalf("oldest event = %+v, want case_opened", got[1])
	}
}

func TestListCaseEventsLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		event := CaseEvent{GuildID: "g1", ActorID: "mod1", TargetID: "u1", Event: "action", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := store.AddCaseEvent(ctx, event); err != nil {
			t.Fatalf("add case event: %v", err)
		}
	}

	got, err := store.ListCaseEvents(ctx, "g1", 3)
	if err != nil {
		t.Fatalf("list case events: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
}
