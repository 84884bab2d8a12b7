package storage

import (
	"context"
	"time"
)

// CaseEvent is one entry in the moderation audit trail: a case being opened
// or an action applied to a user.
type CaseEvent struct {
	ID        int64
	GuildID   string
	ActorID   string
	TargetID  string
	Event     string
	Details   string
	CreatedAt time.Time
}

func (s *Store) AddCaseEvent(ctx context.Context, event CaseEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO case_events (guild_id, actor_id, target_id, event, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, event.GuildID, event.ActorID, event.TargetID, event.Event, event.Details, event.CreatedAt)
	return err
}

// ListCaseEvents returns the most recent events for a guild, newest first.
func (s *Store) ListCaseEvents(ctx context.Context, guildID string, limit int) ([]CaseEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, guild_id, actor_id, target_id, event, details, created_at
		FROM case_events WHERE guild_id = ?
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []CaseEvent
	for rows.Next() {
		var event CaseEvent
		if err := rows.Scan(&event.ID, &event.GuildID, &event.ActorID, &event.TargetID, &event.Event, &event.Details, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
