package moderation

import (
	"fmt"
	"strings"
	"time"

	"modcase-bot/internal/utils"

	"github.com/bwmarrin/discordgo"
)

// MessageInfoEmbed summarizes a reported message for the case thread: who
// asked for the case, where the original lives, who wrote it and when.
func MessageInfoEmbed(msg *discordgo.Message, requester *discordgo.Member, sourceChannel *discordgo.Channel, now time.Time) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Moderator", Value: requester.Mention(), Inline: true},
		{Name: "Original message", Value: fmt.Sprintf("[link](%s)", jumpURL(msg)), Inline: true},
	}
	if msg.Author != nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Original author", Value: msg.Author.Mention(), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Sent", Value: utils.TimeText(msg.Timestamp, now), Inline: true})
	if msg.EditedTimestamp != nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Edited", Value: utils.TimeText(*msg.EditedTimestamp, now), Inline: true})
	}
	// Channel mentions only render for regular text channels; threads and
	// DMs have no useful mention here.
	if sourceChannel != nil && sourceChannel.Type == discordgo.ChannelTypeGuildText {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Channel", Value: "<#" + sourceChannel.ID + ">", Inline: true})
	}

	return &discordgo.MessageEmbed{Title: "Message info", Fields: fields}
}

// UserInfoEmbed summarizes the reported user. The short form used inside
// case threads omits the permission listing; the full form (the
// "Get user info" command) includes the guild permission names resolved
// from guildRoles.
func UserInfoEmbed(member *discordgo.Member, guildRoles []*discordgo.Role, short bool, now time.Time) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "User info"}
	if member == nil || member.User == nil {
		return embed
	}
	user := member.User

	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: user.ID, Inline: true},
	}
	if created, err := discordgo.SnowflakeTimestamp(user.ID); err == nil {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Joined Discord", Value: utils.TimeText(created, now), Inline: true})
	}
	if !member.JoinedAt.IsZero() {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Joined Server", Value: utils.TimeText(member.JoinedAt, now), Inline: true})
	}
	if len(member.Roles) > 0 {
		mentions := make([]string, 0, len(member.Roles))
		for _, roleID := range member.Roles {
			mentions = append(mentions, "<@&"+roleID+">")
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Roles", Value: strings.Join(mentions, ","), Inline: false})
	}
	if !short {
		if names := permissionNames(rolePermissions(member.Roles, guildRoles)); names != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Guild permissions", Value: names, Inline: false})
		}
	}
	embed.Fields = fields

	name := user.String()
	if avatar := user.AvatarURL(""); avatar != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
		embed.Author = &discordgo.MessageEmbedAuthor{Name: name, IconURL: avatar}
	} else {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: name}
	}
	return embed
}

func jumpURL(msg *discordgo.Message) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", msg.GuildID, msg.ChannelID, msg.ID)
}

func rolePermissions(memberRoles []string, guildRoles []*discordgo.Role) int64 {
	var perms int64
	for _, role := range guildRoles {
		if role == nil {
			continue
		}
		if holdsRole(memberRoles, role.ID) {
			perms |= role.Permissions
		}
	}
	return perms
}

var permissionLabels = []struct {
	bit  int64
	name string
}{
	{discordgo.PermissionAdministrator, "Administrator"},
	{discordgo.PermissionManageServer, "Manage server"},
	{discordgo.PermissionManageChannels, "Manage channels"},
	{discordgo.PermissionManageRoles, "Manage roles"},
	{discordgo.PermissionManageMessages, "Manage messages"},
	{discordgo.PermissionManageWebhooks, "Manage webhooks"},
	{discordgo.PermissionKickMembers, "Kick members"},
	{discordgo.PermissionBanMembers, "Ban members"},
	{discordgo.PermissionModerateMembers, "Moderate members"},
	{discordgo.PermissionMentionEveryone, "Mention everyone"},
	{discordgo.PermissionViewAuditLogs, "View audit log"},
	{discordgo.PermissionSendMessages, "Send messages"},
	{discordgo.PermissionViewChannel, "View channels"},
	{discordgo.PermissionAttachFiles, "Attach files"},
	{discordgo.PermissionEmbedLinks, "Embed links"},
	{discordgo.PermissionAddReactions, "Add reactions"},
}

func permissionNames(perms int64) string {
	names := make([]string, 0, len(permissionLabels))
	for _, label := range permissionLabels {
		if perms&label.bit != 0 {
			names = append(names, label.name)
		}
	}
	return strings.Join(names, ", ")
}
