package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"modcase-bot/internal/audit"
	"modcase-bot/internal/moderation"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	caseFormPrefix   = "case_form"
	caseInvitePrefix = "case_invite"

	msgOutsideGuild   = "Can't determine a moderator cases channel outside of a guild"
	msgMemberUnknown  = "Something went wrong, we're unable to verify if you're a moderator."
	msgSettingUp      = "Setting up the thread..."
	msgThreadCreated  = "Created a new moderation thread: <#%s>"
	msgInvitePlaced   = "<@%s> was invited to join the discussion"
	msgInviteConfirm  = "Invited <@%s>"
	invitePlaceholder = "Invite a mod to the thread"
)

func (b *Bot) onInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(session, interaction)
	case discordgo.InteractionModalSubmit:
		b.handleModalSubmit(session, interaction)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(session, interaction)
	}
}

func (b *Bot) handleCommand(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	data := interaction.ApplicationCommandData()

	if data.Name == "config" {
		b.handleConfig(session, interaction, data)
		return
	}

	if interaction.GuildID == "" || interaction.Member == nil {
		b.respond(session, interaction, msgOutsideGuild, true)
		return
	}

	ctx := context.Background()
	cfg := b.guildConfig(ctx, interaction.GuildID)
	if err := moderation.Authorize(interaction.Member.Roles, cfg); err != nil {
		b.respond(session, interaction, moderation.UserMessage(err), true)
		return
	}

	msg := resolvedMessage(data)
	if msg == nil {
		b.respond(session, interaction, "Something went wrong. Please try again", true)
		return
	}
	msg.GuildID = interaction.GuildID

	switch data.Name {
	case cmdStartThread:
		b.openCaseModal(session, interaction, msg)
	case cmdMessageInfo:
		b.respondMessageInfo(session, interaction, msg)
	case cmdUserInfo:
		b.respondUserInfo(session, interaction, msg)
	}
}

func resolvedMessage(data discordgo.ApplicationCommandInteractionData) *discordgo.Message {
	if data.Resolved == nil {
		return nil
	}
	return data.Resolved.Messages[data.TargetID]
}

func (b *Bot) handleConfig(session *discordgo.Session, interaction *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	if interaction.GuildID == "" {
		b.respond(session, interaction, msgOutsideGuild, true)
		return
	}
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]
	ctx := context.Background()

	switch sub.Name {
	case "moderator":
		role := sub.Options[0].RoleValue(session, interaction.GuildID)
		if role == nil {
			b.respond(session, interaction, "Something went wrong. Please try again", true)
			return
		}
		if err := b.store.SetModeratorRole(ctx, interaction.GuildID, role.ID); err != nil {
			b.logger.Error("saving moderator role failed", zap.Error(err))
			b.respond(session, interaction, "Something went wrong. Please try again", true)
			return
		}
		b.respond(session, interaction, fmt.Sprintf("<@&%s> is now a guild moderator", role.ID), true)
	case "cases":
		channel := sub.Options[0].ChannelValue(session)
		if channel == nil {
			b.respond(session, interaction, "Something went wrong. Please try again", true)
			return
		}
		if err := b.store.SetCasesChannel(ctx, interaction.GuildID, channel.ID); err != nil {
			b.logger.Error("saving cases channel failed", zap.Error(err))
			b.respond(session, interaction, "Something went wrong. Please try again", true)
			return
		}
		b.respond(session, interaction, fmt.Sprintf("<#%s> is now a moderation cases channel", channel.ID), true)
	case "reset-webhook":
		if err := b.store.SetDuplicationWebhook(ctx, interaction.GuildID, ""); err != nil {
			b.logger.Error("resetting webhook failed", zap.Error(err))
			b.respond(session, interaction, "Something went wrong. Please try again", true)
			return
		}
		b.respond(session, interaction, "Webhook was reset", true)
	}
}

func (b *Bot) openCaseModal(session *discordgo.Session, interaction *discordgo.InteractionCreate, msg *discordgo.Message) {
	customID := fmt.Sprintf("%s:%s:%s", caseFormPrefix, msg.ChannelID, msg.ID)
	_ = session.InteractionRespond(interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customID,
			Title:    "Create a new moderation thread",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:  "title",
							Label:     "Short description",
							Style:     discordgo.TextInputShort,
							Required:  true,
							MaxLength: 100,
						},
					},
				},
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: "description",
							Label:    "Longer description",
							Style:    discordgo.TextInputParagraph,
							Required: false,
						},
					},
				},
			},
		},
	})
}

func (b *Bot) respondMessageInfo(session *discordgo.Session, interaction *discordgo.InteractionCreate, msg *discordgo.Message) {
	source, err := b.gw.Channel(msg.ChannelID)
	if err != nil {
		source = nil
	}
	embed := moderation.MessageInfoEmbed(msg, interaction.Member, source, time.Now())
	b.respondEmbed(session, interaction, embed, true)
}

func (b *Bot) respondUserInfo(session *discordgo.Session, interaction *discordgo.InteractionCreate, msg *discordgo.Message) {
	if msg.Author == nil {
		b.respond(session, interaction, "Something went wrong. Please try again", true)
		return
	}
	member, err := b.gw.GuildMember(interaction.GuildID, msg.Author.ID)
	if err != nil || member == nil {
		b.respond(session, interaction, "Something went wrong. Please try again", true)
		return
	}
	roles, err := b.gw.GuildRoles(interaction.GuildID)
	if err != nil {
		roles = nil
	}
	embed := moderation.UserInfoEmbed(member, roles, false, time.Now())
	b.respondEmbed(session, interaction, embed, true)
}

func (b *Bot) handleModalSubmit(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	data := interaction.ModalSubmitData()
	parts := strings.SplitN(data.CustomID, ":", 3)
	if len(parts) != 3 || parts[0] != caseFormPrefix {
		return
	}
	channelID, messageID := parts[1], parts[2]

	if interaction.GuildID == "" || interaction.Member == nil {
		b.respond(session, interaction, msgOutsideGuild, true)
		return
	}

	// The workflow makes several remote calls; acknowledge first so the
	// interaction token does not expire under us.
	b.respond(session, interaction, msgSettingUp, true)

	title, description := modalInputs(data)
	if description == "" {
		description = title
	}

	ctx := context.Background()
	cfg := b.guildConfig(ctx, interaction.GuildID)

	msg, err := b.gw.ChannelMessage(channelID, messageID)
	if err != nil || msg == nil {
		b.editResponse(session, interaction, "Something went wrong. Please try again", nil)
		return
	}
	msg.GuildID = interaction.GuildID

	var reported *discordgo.Member
	if msg.Author != nil {
		reported, _ = b.gw.GuildMember(interaction.GuildID, msg.Author.ID)
	}

	result, err := b.orch.Open(ctx, cfg, moderation.Case{
		GuildID:     interaction.GuildID,
		Title:       title,
		Description: description,
		Message:     msg,
		Reported:    reported,
		Requester:   interaction.Member,
	})
	if err != nil {
		b.logger.Warn("opening case failed",
			zap.String("guild_id", interaction.GuildID),
			zap.Error(err))
		b.editResponse(session, interaction, moderation.UserMessage(err), nil)
		return
	}

	b.trail.Record(ctx, interaction.GuildID, interaction.Member.User.ID, reportedUserID(msg), audit.EventCaseOpened, title)

	content := fmt.Sprintf(msgThreadCreated, result.Thread.ID)
	components := inviteComponents(result.Thread.ID, result.ActiveMods)
	b.editResponse(session, interaction, content, components)
}

func reportedUserID(msg *discordgo.Message) string {
	if msg == nil || msg.Author == nil {
		return ""
	}
	return msg.Author.ID
}

func modalInputs(data discordgo.ModalSubmitInteractionData) (title, description string) {
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}
			switch input.CustomID {
			case "title":
				title = input.Value
			case "description":
				description = input.Value
			}
		}
	}
	return title, description
}

func inviteComponents(threadID string, mods []*discordgo.Member) []discordgo.MessageComponent {
	if len(mods) == 0 {
		return nil
	}
	options := make([]discordgo.SelectMenuOption, 0, len(mods))
	for _, mod := range mods {
		if mod == nil || mod.User == nil {
			continue
		}
		name := mod.Nick
		if name == "" {
			name = mod.User.Username
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       name,
			Value:       mod.User.ID,
			Description: fmt.Sprintf("Ping %s in the newly created thread", name),
		})
	}
	if len(options) == 0 {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    caseInvitePrefix + ":" + threadID,
					Placeholder: invitePlaceholder,
					Options:     options,
				},
			},
		},
	}
}

func (b *Bot) editResponse(session *discordgo.Session, interaction *discordgo.InteractionCreate, content string, components []discordgo.MessageComponent) {
	edit := &discordgo.WebhookEdit{Content: &content}
	if components != nil {
		edit.Components = &components
	}
	if _, err := session.InteractionResponseEdit(interaction.Interaction, edit); err != nil {
		b.logger.Warn("editing interaction response failed", zap.Error(err))
	}
}

func (b *Bot) handleComponent(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	data := interaction.MessageComponentData()

	if action, targetID, ok := moderation.ParseActionCustomID(data.CustomID); ok {
		b.handleCaseAction(session, interaction, action, targetID)
		return
	}
	if threadID, ok := strings.CutPrefix(data.CustomID, caseInvitePrefix+":"); ok {
		b.handleInvite(session, interaction, threadID, data.Values)
	}
}

func (b *Bot) handleCaseAction(session *discordgo.Session, interaction *discordgo.InteractionCreate, action moderation.Action, targetID string) {
	if interaction.GuildID == "" || interaction.Member == nil {
		b.respond(session, interaction, msgMemberUnknown, true)
		return
	}

	ctx := context.Background()
	cfg := b.guildConfig(ctx, interaction.GuildID)

	confirmation, err := b.dispatcher.Dispatch(ctx, action, interaction.GuildID, targetID, interaction.Member.Roles, cfg)
	if err != nil {
		if moderation.ErrKind(err) == moderation.KindPlatformTransient {
			b.logger.Warn("moderation action failed",
				zap.String("guild_id", interaction.GuildID),
				zap.String("action", string(action)),
				zap.Error(err))
		}
		b.respond(session, interaction, moderation.UserMessage(err), true)
		return
	}
	b.trail.Record(ctx, interaction.GuildID, interaction.Member.User.ID, targetID, audit.EventAction, string(action))
	b.respond(session, interaction, confirmation, true)
}

func (b *Bot) handleInvite(session *discordgo.Session, interaction *discordgo.InteractionCreate, threadID string, values []string) {
	if len(values) == 0 {
		return
	}
	userID := values[0]

	if _, err := b.gw.SendMessage(threadID, fmt.Sprintf(msgInvitePlaced, userID)); err != nil {
		b.logger.Warn("inviting moderator failed",
			zap.String("thread_id", threadID),
			zap.Error(err))
		b.respond(session, interaction, "Something went wrong. Please try again", true)
		return
	}
	if interaction.Member != nil && interaction.Member.User != nil {
		b.trail.Record(context.Background(), interaction.GuildID, interaction.Member.User.ID, userID, audit.EventInvite, threadID)
	}
	b.respond(session, interaction, fmt.Sprintf(msgInviteConfirm, userID), true)
}
