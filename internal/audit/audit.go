// Package audit keeps a persistent trail of the moderation workflow:
// which cases were opened and which actions were applied, by whom.
package audit

import (
	"context"
	"time"

	"modcase-bot/internal/storage"

	"go.uber.org/zap"
)

const (
	EventCaseOpened = "case_opened"
	EventAction     = "action"
	EventInvite     = "invite"
)

type Trail struct {
	store  *storage.Store
	logger *zap.Logger
}

func NewTrail(store *storage.Store, logger *zap.Logger) *Trail {
	return &Trail{store: store, logger: logger}
}

// Record persists one event and mirrors it to the structured log. Trail
// writes never fail the workflow that produced them.
func (t *Trail) Record(ctx context.Context, guildID, actorID, targetID, event, details string) {
	entry := storage.CaseEvent{
		GuildID:   guildID,
		ActorID:   actorID,
		TargetID:  targetID,
		Event:     event,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if t.store != nil {
		if err := t.store.AddCaseEvent(ctx, entry); err != nil {
			t.logger.Warn("audit trail write failed", zap.Error(err))
		}
	}
	t.logger.Info("audit",
		zap.String("guild_id", guildID),
		zap.String("actor_id", actorID),
		zap.String("target_id", targetID),
		zap.String("event", event),
		zap.String("details", details))
}
