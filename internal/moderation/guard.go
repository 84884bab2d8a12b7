package moderation

import "modcase-bot/internal/storage"

const (
	msgNoModeratorRole = "You didn't set up a moderator. Use `/config moderator` to choose one"
	msgNotModerator    = "This command is reserved for moderators"
)

// Authorize checks whether an actor holding the given roles may perform
// moderator actions in a guild. It is a pure predicate: callers render the
// returned denial themselves and must re-invoke the check at every
// privileged entry point, since roles can change while an action surface
// stays rendered.
func Authorize(roles []string, cfg storage.GuildConfig) error {
	if cfg.ModeratorRole == "" {
		return unconfigured(msgNoModeratorRole)
	}
	if holdsRole(roles, cfg.ModeratorRole) {
		return nil
	}
	return forbidden(msgNotModerator)
}
