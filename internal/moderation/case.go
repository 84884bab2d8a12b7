package moderation

import (
	"context"

	"modcase-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const msgNoCasesChannel = "You didn't set up a moderation cases channel. Use `/config cases` to choose one"

// Case is a request to open a moderation discussion around a reported
// message.
type Case struct {
	GuildID     string
	Title       string
	Description string
	Message     *discordgo.Message
	Reported    *discordgo.Member
	Requester   *discordgo.Member
}

// CaseResult carries the outcome of Open. Thread is set as soon as the
// thread exists, even when a later population step failed. RelayErr records
// a failed relay without failing the case.
type CaseResult struct {
	Thread     *discordgo.Channel
	ActiveMods []*discordgo.Member
	RelayErr   error
}

// Orchestrator runs the case-opening workflow: anchor message, thread,
// context embed with action buttons, relayed original, user summary, and
// the suggested invitee list.
type Orchestrator struct {
	gw     Gateway
	relay  *Relay
	finder *Finder
	clock  Clock
	logger *zap.Logger
}

func NewOrchestrator(gw Gateway, relay *Relay, finder *Finder, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{gw: gw, relay: relay, finder: finder, clock: realClock{}, logger: logger}
}

func (o *Orchestrator) WithClock(clock Clock) {
	o.clock = clock
}

// Open creates the case thread and populates it. The anchor message and the
// thread itself are all-or-nothing; once the thread exists, population
// failures return the partial result so the caller can still link the
// thread. A relay failure alone does not fail the case.
func (o *Orchestrator) Open(ctx context.Context, cfg storage.GuildConfig, kase Case) (CaseResult, error) {
	var result CaseResult

	if cfg.CasesChannel == "" {
		return result, unconfigured(msgNoCasesChannel)
	}
	channel, err := o.gw.Channel(cfg.CasesChannel)
	if err != nil {
		return result, transient("cases channel lookup failed", err)
	}
	if channel == nil || channel.Type != discordgo.ChannelTypeGuildText {
		return result, invalidTarget("The configured cases channel is not a text channel")
	}

	anchor, err := o.gw.SendMessage(cfg.CasesChannel, kase.Description)
	if err != nil {
		return result, transient("posting case anchor failed", err)
	}
	thread, err := o.gw.StartThread(cfg.CasesChannel, anchor.ID, kase.Title)
	if err != nil {
		return result, transient("starting case thread failed", err)
	}
	result.Thread = thread

	now := o.clock.Now()
	source, err := o.gw.Channel(kase.Message.ChannelID)
	if err != nil {
		// The context embed degrades to omitting the channel field.
		source = nil
	}
	info := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{MessageInfoEmbed(kase.Message, kase.Requester, source, now)},
		Components: ActionButtons(reportedID(kase)),
	}
	if _, err := o.gw.SendComplex(thread.ID, info); err != nil {
		return result, transient("posting case context failed", err)
	}

	if err := o.relay.Duplicate(ctx, cfg, kase.Message, thread, kase.Reported); err != nil {
		result.RelayErr = err
		o.logger.Warn("relaying reported message failed",
			zap.String("guild_id", kase.GuildID),
			zap.String("thread_id", thread.ID),
			zap.Error(err))
	}

	if kase.Reported != nil {
		user := &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{UserInfoEmbed(kase.Reported, nil, true, now)},
		}
		if _, err := o.gw.SendComplex(thread.ID, user); err != nil {
			return result, transient("posting user summary failed", err)
		}
	}

	mods, err := o.finder.ActiveModerators(kase.Message, cfg)
	if err != nil {
		// Suggestions are best-effort; the case stands without them.
		o.logger.Warn("finding active moderators failed",
			zap.String("guild_id", kase.GuildID),
			zap.Error(err))
		mods = nil
	}
	result.ActiveMods = mods
	return result, nil
}

func reportedID(kase Case) string {
	if kase.Reported != nil && kase.Reported.User != nil {
		return kase.Reported.User.ID
	}
	if kase.Message != nil && kase.Message.Author != nil {
		return kase.Message.Author.ID
	}
	return ""
}
