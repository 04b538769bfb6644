// Package modlog - /modlog setchannel command
package modlog

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	modlogsvc "github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createSetChannelCommand creates the /modlog setchannel subcommand
func createSetChannelCommand() *discord.Command {
	return discord.NewCommand(
		"setchannel",
		"Establece el canal del registro de moderación y lo activa",
		"modlog",
		setChannelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal donde se publicarán los casos",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// setChannelHandler handles the /modlog setchannel command
func setChannelHandler(ctx *discord.CommandContext) error {
	channel := ctx.GetChannelOption("canal")
	if channel == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un canal.")
	}

	// The bot must be able to post embeds there before we accept the config
	botID := ctx.Session.State.User.ID
	perms, err := ctx.Session.UserChannelPermissions(botID, channel.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ No se pudieron comprobar los permisos del canal: %v", err))
	}
	needed := int64(discordgo.PermissionSendMessages | discordgo.PermissionEmbedLinks)
	if perms&needed != needed {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Necesito permisos de **Enviar Mensajes** y **Insertar Enlaces** en <#%s>.", channel.ID))
	}

	opCtx, cancel := opContext()
	defer cancel()

	store := modlogsvc.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	if !store.SetModLogChannelID(opCtx, guildID, discord.ParseSnowflake(channel.ID)) {
		return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración.")
	}
	if !store.SetModLogEnabled(opCtx, guildID, true) {
		return ctx.ReplyEphemeral("❌ Canal guardado, pero no se pudo activar el registro.")
	}

	return ctx.Reply(fmt.Sprintf("✅ Registro de moderación activado en <#%s>.", channel.ID))
}
