package moderation

import (
	"context"
	"fmt"
	"time"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type sentComplex struct {
	channelID string
	data      *discordgo.MessageSend
}

type webhookExec struct {
	webhookID string
	threadID  string
	params    *discordgo.WebhookParams
}

type timeoutCall struct {
	userID string
	until  time.Time
}

type banCall struct {
	userID    string
	purgeDays int
}

// fakeGateway implements Gateway in memory and records every mutating call
// in order.
type fakeGateway struct {
	channels map[string]*discordgo.Channel
	members  map[string]*discordgo.Member
	history  []*discordgo.Message
	webhooks map[string][]*discordgo.Webhook

	historyErr  error
	webhooksErr error

	sent      []string
	complexes []sentComplex
	threads   []string
	created   []*discordgo.Webhook
	executed  []webhookExec
	timeouts  []timeoutCall
	kicks     []string
	bans      []banCall

	nextID int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels: make(map[string]*discordgo.Channel),
		members:  make(map[string]*discordgo.Member),
		webhooks: make(map[string][]*discordgo.Webhook),
	}
}

func (g *fakeGateway) id(prefix string) string {
	g.nextID++
	return fmt.Sprintf("%s-%d", prefix, g.nextID)
}

func (g *fakeGateway) Channel(channelID string) (*discordgo.Channel, error) {
	ch, ok := g.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %s", channelID)
	}
	return ch, nil
}

func (g *fakeGateway) ChannelMessage(channelID, messageID string) (*discordgo.Message, error) {
	for _, msg := range g.history {
		if msg.ChannelID == channelID && msg.ID == messageID {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("unknown message %s", messageID)
}

func (g *fakeGateway) ChannelMessages(channelID string, limit int, beforeID, afterID string) ([]*discordgo.Message, error) {
	if g.historyErr != nil {
		return nil, g.historyErr
	}
	var out []*discordgo.Message
	for _, msg := range g.history {
		if msg.ChannelID == channelID {
			out = append(out, msg)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (g *fakeGateway) GuildMember(guildID, userID string) (*discordgo.Member, error) {
	member, ok := g.members[userID]
	if !ok {
		return nil, fmt.Errorf("unknown member %s", userID)
	}
	return member, nil
}

func (g *fakeGateway) GuildRoles(guildID string) ([]*discordgo.Role, error) {
	return nil, nil
}

func (g *fakeGateway) SendMessage(channelID, content string) (*discordgo.Message, error) {
	g.sent = append(g.sent, content)
	return &discordgo.Message{ID: g.id("msg"), ChannelID: channelID, Content: content}, nil
}

func (g *fakeGateway) SendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	g.complexes = append(g.complexes, sentComplex{channelID: channelID, data: data})
	return &discordgo.Message{ID: g.id("msg"), ChannelID: channelID}, nil
}

func (g *fakeGateway) StartThread(channelID, messageID, name string) (*discordgo.Channel, error) {
	g.threads = append(g.threads, name)
	thread := &discordgo.Channel{
		ID:       g.id("thread"),
		Name:     name,
		ParentID: channelID,
		Type:     discordgo.ChannelTypeGuildPublicThread,
	}
	g.channels[thread.ID] = thread
	return thread, nil
}

func (g *fakeGateway) ChannelWebhooks(channelID string) ([]*discordgo.Webhook, error) {
	if g.webhooksErr != nil {
		return nil, g.webhooksErr
	}
	return g.webhooks[channelID], nil
}

func (g *fakeGateway) CreateWebhook(channelID, name string) (*discordgo.Webhook, error) {
	hook := &discordgo.Webhook{
		ID:        g.id("hook"),
		Token:     "token",
		ChannelID: channelID,
		Name:      name,
	}
	g.webhooks[channelID] = append(g.webhooks[channelID], hook)
	g.created = append(g.created, hook)
	return hook, nil
}

func (g *fakeGateway) WebhookThreadExecute(webhookID, token, threadID string, params *discordgo.WebhookParams) error {
	g.executed = append(g.executed, webhookExec{webhookID: webhookID, threadID: threadID, params: params})
	return nil
}

func (g *fakeGateway) TimeoutMember(guildID, userID string, until time.Time) error {
	g.timeouts = append(g.timeouts, timeoutCall{userID: userID, until: until})
	return nil
}

func (g *fakeGateway) KickMember(guildID, userID string) error {
	g.kicks = append(g.kicks, userID)
	return nil
}

func (g *fakeGateway) BanMember(guildID, userID string, purgeDays int) error {
	g.bans = append(g.bans, banCall{userID: userID, purgeDays: purgeDays})
	return nil
}

func (g *fakeGateway) mutationCount() int {
	return len(g.timeouts) + len(g.kicks) + len(g.bans)
}

// fakeStore implements ConfigStore over a single guild config.
type fakeStore struct {
	cfg       storage.GuildConfig
	setErr    error
	hookWrite []string
}

func (s *fakeStore) GetGuildConfig(ctx context.Context, guildID string) (storage.GuildConfig, error) {
	return s.cfg, nil
}

func (s *fakeStore) SetDuplicationWebhook(ctx context.Context, guildID, webhookID string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.cfg.DuplicationWebhook = webhookID
	s.hookWrite = append(s.hookWrite, webhookID)
	return nil
}

func member(userID, username string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: userID, Username: username},
		Roles: roles,
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
