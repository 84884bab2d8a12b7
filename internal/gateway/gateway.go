// Package gateway adapts a live discordgo session to the narrow interface
// the moderation workflows consume.
package gateway

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Threads auto-archive after a day of inactivity.
const threadArchiveMinutes = 60 * 24

type Session struct {
	s *discordgo.Session
}

func New(s *discordgo.Session) *Session {
	return &Session{s: s}
}

func (g *Session) Channel(channelID string) (*discordgo.Channel, error) {
	return g.s.Channel(channelID)
}

func (g *Session) ChannelMessage(channelID, messageID string) (*discordgo.Message, error) {
	return g.s.ChannelMessage(channelID, messageID)
}

func (g *Session) ChannelMessages(channelID string, limit int, beforeID, afterID string) ([]*discordgo.Message, error) {
	return g.s.ChannelMessages(channelID, limit, beforeID, afterID, "")
}

func (g *Session) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	return g.s.GuildMember(guildID, userID)
}

func (g *Session) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return g.s.GuildRoles(guildID)
}

func (g *Session) SendMessage(channelID, content string) (*discordgo.Message, error) {
	return g.s.ChannelMessageSend(channelID, content)
}

func (g *Session) SendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return g.s.ChannelMessageSendComplex(channelID, data)
}

func (g *Session) StartThread(channelID, messageID, name string) (*discordgo.Channel, error) {
	return g.s.MessageThreadStart(channelID, messageID, name, threadArchiveMinutes)
}

func (g *Session) ChannelWebhooks(channelID string) ([]*discordgo.Webhook, error) {
	return g.s.ChannelWebhooks(channelID)
}

func (g *Session) CreateWebhook(channelID, name string) (*discordgo.Webhook, error) {
	return g.s.WebhookCreate(channelID, name, "")
}

func (g *Session) WebhookThreadExecute(webhookID, token, threadID string, params *discordgo.WebhookParams) error {
	_, err := g.s.WebhookThreadExecute(webhookID, token, true, threadID, params)
	return err
}

func (g *Session) TimeoutMember(guildID, userID string, until time.Time) error {
	return g.s.GuildMemberTimeout(guildID, userID, &until)
}

func (g *Session) KickMember(guildID, userID string) error {
	return g.s.GuildMemberDelete(guildID, userID)
}

func (g *Session) BanMember(guildID, userID string, purgeDays int) error {
	return g.s.GuildBanCreateWithReason(guildID, userID, "", purgeDays)
}
