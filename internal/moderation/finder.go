package moderation

import (
	"time"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Recency is a relevance proxy here, not a correctness requirement, so the
// window and scan depth are deliberate heuristics rather than configuration.
const (
	activeWindow = 15 * time.Minute
	historyLimit = 100
)

// Finder computes the set of moderators who recently participated in a
// channel, used to suggest invitees for a new case thread.
type Finder struct {
	gw    Gateway
	clock Clock
}

func NewFinder(gw Gateway) *Finder {
	return &Finder{gw: gw, clock: realClock{}}
}

func (f *Finder) WithClock(clock Clock) {
	f.clock = clock
}

// ActiveModerators returns the distinct authors of recent messages in the
// origin channel of msg who currently hold the configured moderator role.
// The result is a point-in-time approximation recomputed on every call.
func (f *Finder) ActiveModerators(msg *discordgo.Message, cfg storage.GuildConfig) ([]*discordgo.Member, error) {
	if msg == nil || msg.GuildID == "" {
		// There are no mods outside of guilds.
		return nil, nil
	}
	if cfg.ModeratorRole == "" {
		return nil, nil
	}
	now := f.clock.Now()
	if now.Sub(msg.Timestamp) > activeWindow {
		// Operating on an old message; nobody is "active" around it.
		return nil, nil
	}

	messages, err := f.gw.ChannelMessages(msg.ChannelID, historyLimit, "", "")
	if err != nil {
		return nil, transient("history scan failed", err)
	}

	cutoff := now.Add(-activeWindow)
	seen := make(map[string]struct{})
	var mods []*discordgo.Member
	for _, message := range messages {
		if message == nil || message.Author == nil {
			continue
		}
		if message.Timestamp.Before(cutoff) {
			continue
		}
		if _, ok := seen[message.Author.ID]; ok {
			continue
		}
		seen[message.Author.ID] = struct{}{}

		member, err := f.gw.GuildMember(msg.GuildID, message.Author.ID)
		if err != nil || member == nil {
			// Unresolvable authors are simply not suggested.
			continue
		}
		if holdsRole(member.Roles, cfg.ModeratorRole) {
			mods = append(mods, member)
		}
	}
	return mods, nil
}

func holdsRole(roles []string, roleID string) bool {
	for _, role := range roles {
		if role == roleID {
			return true
		}
	}
	return false
}
