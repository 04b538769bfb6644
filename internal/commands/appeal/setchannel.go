// Package appeal - /appeal setchannel command
package appeal

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/bwmarrin/discordgo"
)

// createSetChannelCommand creates the /appeal setchannel subcommand
func createSetChannelCommand() *discord.Command {
	return discord.NewCommand(
		"setchannel",
		"Establece el canal donde llegan las apelaciones",
		"appeal",
		setChannelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal de apelaciones",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// setChannelHandler handles the /appeal setchannel command
func setChannelHandler(ctx *discord.CommandContext) error {
	channel := ctx.GetChannelOption("canal")
	if channel == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un canal.")
	}

	opCtx, cancel := opContext()
	defer cancel()

	store := modlog.Get().Store()
	guildID := discord.ParseSnowflake(ctx.Interaction.GuildID)

	if !store.SetAppealChannelID(opCtx, guildID, discord.ParseSnowflake(channel.ID)) {
		return ctx.ReplyEphemeral("❌ No se pudo guardar la configuración.")
	}

	return ctx.Reply(fmt.Sprintf("✅ Las apelaciones llegarán a <#%s>.", channel.ID))
}
