package moderation

import (
	"context"
	"time"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Gateway abstracts the Discord operations the workflow engine needs, so
// the engine can be exercised against a fake in tests. Every method maps to
// a single fallible remote call.
type Gateway interface {
	Channel(channelID string) (*discordgo.Channel, error)
	ChannelMessage(channelID, messageID string) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID string) ([]*discordgo.Message, error)
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	SendMessage(channelID, content string) (*discordgo.Message, error)
	SendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	StartThread(channelID, messageID, name string) (*discordgo.Channel, error)
	ChannelWebhooks(channelID string) ([]*discordgo.Webhook, error)
	CreateWebhook(channelID, name string) (*discordgo.Webhook, error)
	WebhookThreadExecute(webhookID, token, threadID string, params *discordgo.WebhookParams) error
	TimeoutMember(guildID, userID string, until time.Time) error
	KickMember(guildID, userID string) error
	BanMember(guildID, userID string, purgeDays int) error
}

// ConfigStore is the slice of the guild configuration store the engine
// needs. *storage.Store satisfies it.
type ConfigStore interface {
	GetGuildConfig(ctx context.Context, guildID string) (storage.GuildConfig, error)
	SetDuplicationWebhook(ctx context.Context, guildID, webhookID string) error
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
