package bot

import (
	"context"

	"modcase-bot/internal/audit"
	"modcase-bot/internal/config"
	"modcase-bot/internal/gateway"
	"modcase-bot/internal/moderation"
	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

type Bot struct {
	cfg        config.Config
	logger     *zap.Logger
	store      *storage.Store
	session    *discordgo.Session
	gw         moderation.Gateway
	orch       *moderation.Orchestrator
	dispatcher *moderation.Dispatcher
	trail      *audit.Trail
}

func New(cfg config.Config, logger *zap.Logger, store *storage.Store) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	gw := gateway.New(session)
	relay := moderation.NewRelay(gw, store, logger)
	finder := moderation.NewFinder(gw)

	b := &Bot{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		session:    session,
		gw:         gw,
		orch:       moderation.NewOrchestrator(gw, relay, finder, logger),
		dispatcher: moderation.NewDispatcher(gw),
		trail:      audit.NewTrail(store, logger),
	}
	return b, nil
}

func (b *Bot) Start() error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	if err := b.registerCommands(); err != nil {
		return err
	}
	return nil
}

func (b *Bot) Close(ctx context.Context) {
	_ = ctx
	if b.session != nil {
		_ = b.session.Close()
	}
}

func (b *Bot) onReady(session *discordgo.Session, event *discordgo.Ready) {
	b.logger.Info("discord ready", zap.String("user", session.State.User.Username))
}

func (b *Bot) respond(session *discordgo.Session, interaction *discordgo.InteractionCreate, content string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}

func (b *Bot) respondEmbed(session *discordgo.Session, interaction *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	if embed == nil {
		b.respond(session, interaction, "No response available.", ephemeral)
		return
	}
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags,
		},
	})
}

func (b *Bot) guildConfig(ctx context.Context, guildID string) storage.GuildConfig {
	cfg, err := b.store.GetGuildConfig(ctx, guildID)
	if err != nil {
		b.logger.Warn("guild config fallback", zap.Error(err))
		return storage.GuildConfig{GuildID: guildID}
	}
	return cfg
}
