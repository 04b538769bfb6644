// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, modlog, appeal, utils)
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/appeal"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/modlog"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Moderation commands (/mod ban, /mod kick, /mod timeout, ...)
	mod.RegisterModCommands(client)

	// Case log commands (/modlog setchannel, /modlog view, ...)
	modlog.RegisterModLogCommands(client)

	// Ban appeal workflow (/appeal setup, button + modal)
	appeal.RegisterAppealCommands(client)

	// Diagnostics (/utils ping, /utils status, ...)
	utils.RegisterUtilsCommands(client)
}
