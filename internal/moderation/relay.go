package moderation

import (
	"context"
	"strings"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// relayWebhookName identifies the webhooks this bot manages. It is a naming
// convention only; reuse is decided by the cached id, not the name.
const relayWebhookName = "Moderation messages duplicator"

// Relay re-posts reported content into a case thread through a per-channel
// webhook, impersonating the original author's display identity without
// creating a reply or re-triggering mention notifications.
type Relay struct {
	gw     Gateway
	store  ConfigStore
	logger *zap.Logger
}

func NewRelay(gw Gateway, store ConfigStore, logger *zap.Logger) *Relay {
	return &Relay{gw: gw, store: store, logger: logger}
}

// Ensure finds or creates the relay webhook for a channel. The id cached in
// the guild config is advisory: if it no longer resolves to a webhook on the
// channel (deleted externally), a fresh one is created and the cache is
// overwritten. Pre-existing webhooks are never deleted.
func (r *Relay) Ensure(ctx context.Context, guildID, channelID, cachedID string) (*discordgo.Webhook, error) {
	hooks, err := r.gw.ChannelWebhooks(channelID)
	if err != nil {
		return nil, relayFailure(err)
	}
	if cachedID != "" {
		for _, hook := range hooks {
			if hook != nil && hook.ID == cachedID && hook.ChannelID == channelID {
				return hook, nil
			}
		}
	}

	hook, err := r.gw.CreateWebhook(channelID, relayWebhookName)
	if err != nil {
		return nil, relayFailure(err)
	}
	if err := r.store.SetDuplicationWebhook(ctx, guildID, hook.ID); err != nil {
		// The webhook works for this case either way; a failed cache write
		// only costs an extra webhook on some later case.
		r.logger.Warn("caching relay webhook failed", zap.String("guild_id", guildID), zap.Error(err))
	}
	return hook, nil
}

// Duplicate relays the reported message into the thread as the original
// author, with every automatic mention suppressed.
func (r *Relay) Duplicate(ctx context.Context, cfg storage.GuildConfig, msg *discordgo.Message, thread *discordgo.Channel, author *discordgo.Member) error {
	if thread.ParentID == "" {
		return relayFailure(nil)
	}
	hook, err := r.Ensure(ctx, cfg.GuildID, thread.ParentID, cfg.DuplicationWebhook)
	if err != nil {
		return err
	}

	params := &discordgo.WebhookParams{
		Content:   relayContent(msg),
		Username:  displayName(author),
		AvatarURL: avatarURL(author),
		Embeds:    msg.Embeds,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{},
		},
	}
	if err := r.gw.WebhookThreadExecute(hook.ID, hook.Token, thread.ID, params); err != nil {
		return relayFailure(err)
	}
	return nil
}

func relayContent(msg *discordgo.Message) string {
	parts := make([]string, 0, 1+len(msg.Attachments))
	if msg.Content != "" {
		parts = append(parts, msg.Content)
	}
	for _, attachment := range msg.Attachments {
		if attachment != nil && attachment.URL != "" {
			parts = append(parts, attachment.URL)
		}
	}
	return strings.Join(parts, "\n")
}

func displayName(member *discordgo.Member) string {
	if member == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User != nil {
		return member.User.Username
	}
	return ""
}

func avatarURL(member *discordgo.Member) string {
	if member == nil || member.User == nil {
		return ""
	}
	return member.User.AvatarURL("")
}
