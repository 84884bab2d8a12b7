package moderation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Action identifies one of the quick moderation actions bound to a case
// thread's button row.
type Action string

const (
	ActionTimeoutMinute Action = "timeout_1m"
	ActionTimeoutHour   Action = "timeout_1h"
	ActionTimeoutDay    Action = "timeout_1d"
	ActionKick          Action = "kick"
	ActionBan           Action = "ban"
)

// banPurgeDays matches the button label: banning also purges a day worth of
// the target's recent messages.
const banPurgeDays = 1

const actionCustomIDPrefix = "case_action"

// Dispatcher applies a single moderation action to a target user. Every
// dispatch re-validates the actor's roles; the rendered surface may be
// long-lived and the actor's roles may have changed since.
type Dispatcher struct {
	gw    Gateway
	clock Clock
}

func NewDispatcher(gw Gateway) *Dispatcher {
	return &Dispatcher{gw: gw, clock: realClock{}}
}

func (d *Dispatcher) WithClock(clock Clock) {
	d.clock = clock
}

// Dispatch authorizes the actor and performs exactly one mutating call,
// returning the confirmation text for the actor. Actions are not tracked:
// dispatching a timeout twice simply re-applies it.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, guildID, targetID string, actorRoles []string, cfg storage.GuildConfig) (string, error) {
	_ = ctx
	if err := Authorize(actorRoles, cfg); err != nil {
		return "", err
	}

	switch action {
	case ActionTimeoutMinute:
		return d.timeout(guildID, targetID, time.Minute, "Timed out for a minute")
	case ActionTimeoutHour:
		return d.timeout(guildID, targetID, time.Hour, "Timed out for an hour")
	case ActionTimeoutDay:
		return d.timeout(guildID, targetID, 24*time.Hour, "Timed out for a day")
	case ActionKick:
		if err := d.gw.KickMember(guildID, targetID); err != nil {
			return "", transient("kick failed", err)
		}
		return "User kicked", nil
	case ActionBan:
		if err := d.gw.BanMember(guildID, targetID, banPurgeDays); err != nil {
			return "", transient("ban failed", err)
		}
		return "User banned", nil
	default:
		return "", invalidTarget("Unknown moderation action")
	}
}

func (d *Dispatcher) timeout(guildID, targetID string, duration time.Duration, confirmation string) (string, error) {
	until := d.clock.Now().Add(duration)
	if err := d.gw.TimeoutMember(guildID, targetID, until); err != nil {
		return "", transient("timeout failed", err)
	}
	return confirmation, nil
}

// ActionCustomID encodes an action button's custom id so the interaction
// handler can route it back through ParseActionCustomID.
func ActionCustomID(action Action, targetID string) string {
	return fmt.Sprintf("%s:%s:%s", actionCustomIDPrefix, action, targetID)
}

// ParseActionCustomID decodes a custom id produced by ActionCustomID. The
// second return is false when the id belongs to another component.
func ParseActionCustomID(customID string) (Action, string, bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] != actionCustomIDPrefix {
		return "", "", false
	}
	return Action(parts[1]), parts[2], true
}

// ActionButtons builds the quick-action rows bound to the reported user.
func ActionButtons(targetID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Timeout 1m",
					Style:    discordgo.PrimaryButton,
					CustomID: ActionCustomID(ActionTimeoutMinute, targetID),
				},
				discordgo.Button{
					Label:    "Timeout 1h",
					Style:    discordgo.PrimaryButton,
					CustomID: ActionCustomID(ActionTimeoutHour, targetID),
				},
				discordgo.Button{
					Label:    "Timeout 1d",
					Style:    discordgo.PrimaryButton,
					CustomID: ActionCustomID(ActionTimeoutDay, targetID),
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Kick",
					Style:    discordgo.DangerButton,
					CustomID: ActionCustomID(ActionKick, targetID),
				},
				discordgo.Button{
					Label:    "Ban and delete a day worth of messages",
					Style:    discordgo.DangerButton,
					CustomID: ActionCustomID(ActionBan, targetID),
				},
			},
		},
	}
}
