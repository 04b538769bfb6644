// Package mod - command registration
package mod

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	banCmd := createBanCommand()
	unbanCmd := createUnbanCommand()
	kickCmd := createKickCommand()
	timeoutCmd := createTimeoutCommand()
	removeTimeoutCmd := createRemoveTimeoutCommand()
	warnCmd := createWarnCommand()
	dmBannedCmd := createDMBannedCommand()
	infractionsCmd := createInfractionsCommand()
	removeInfractionCmd := createRemoveInfractionCommand()
	clearInfractionsCmd := createClearInfractionsCommand()

	// Build the /mod command group with all subcommands
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		banCmd,
		unbanCmd,
		kickCmd,
		timeoutCmd,
		removeTimeoutCmd,
		warnCmd,
		dmBannedCmd,
		infractionsCmd,
		removeInfractionCmd,
		clearInfractionsCmd,
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
