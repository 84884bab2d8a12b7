package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// GuildConfig holds the per-guild moderation settings. Empty strings mean
// the value has not been configured yet.
type GuildConfig struct {
	GuildID            string
	ModeratorRole      string
	CasesChannel       string
	DuplicationWebhook string
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *Store) Migrate() error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := migrations.ReadFile(path.Join("migrations", file))
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			if isIgnorableMigrationError(err) {
				continue
			}
			return fmt.Errorf("migration %s failed: %w", file, err)
		}
	}
	return nil
}

// GetGuildConfig returns the stored configuration for a guild, or an
// all-empty config when the guild has never been configured.
func (s *Store) GetGuildConfig(ctx context.Context, guildID string) (GuildConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT moderator_role, cases_channel, duplication_webhook
		FROM guild_config WHERE guild_id = ?`, guildID)

	result := GuildConfig{GuildID: guildID}
	err := row.Scan(&result.ModeratorRole, &result.CasesChannel, &result.DuplicationWebhook)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, nil
		}
		return GuildConfig{}, err
	}
	return result, nil
}

func (s *Store) UpsertGuildConfig(ctx context.Context, cfg GuildConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO guild_config (guild_id, moderator_role, cases_channel, duplication_webhook)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			moderator_role = excluded.moderator_role,
			cases_channel = excluded.cases_channel,
			duplication_webhook = excluded.duplication_webhook
	`, cfg.GuildID, cfg.ModeratorRole, cfg.CasesChannel, cfg.DuplicationWebhook)
	return err
}

// SetModeratorRole updates only the moderator role, leaving the other
// fields untouched.
func (s *Store) SetModeratorRole(ctx context.Context, guildID, roleID string) error {
	return s.setField(ctx, guildID, "moderator_role", roleID)
}

// SetCasesChannel updates only the moderation cases channel.
func (s *Store) SetCasesChannel(ctx context.Context, guildID, channelID string) error {
	return s.setField(ctx, guildID, "cases_channel", channelID)
}

// SetDuplicationWebhook updates only the cached relay webhook id. The write
// is a single statement so two concurrent workflows cannot interleave a
// read-modify-write on the rest of the row; last writer wins on the field
// itself, which is acceptable because a stale id self-heals on next use.
func (s *Store) SetDuplicationWebhook(ctx context.Context, guildID, webhookID string) error {
	return s.setField(ctx, guildID, "duplication_webhook", webhookID)
}

func (s *Store) setField(ctx context.Context, guildID, column, value string) error {
	query := fmt.Sprintf(`
		INSERT INTO guild_config (guild_id, %s) VALUES (?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET %s = excluded.%s
	`, column, column, column)
	_, err := s.db.ExecContext(ctx, query, guildID, value)
	return err
}

func isIgnorableMigrationError(err error) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "duplicate column name") || strings.Contains(message, "already exists")
}
