// Package modlog provides the /modlog command group: log channel
// configuration, case inspection and event toggles.
package modlog

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// opTimeout bounds every storage round-trip made from a command handler
const opTimeout = 10 * time.Second

// opContext returns the bounded context used for storage calls
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// RegisterModLogCommands registers all /modlog subcommands
func RegisterModLogCommands(client *discord.ExtendedClient) {
	setChannelCmd := createSetChannelCommand()
	viewCmd := createViewCommand()
	caseCmd := createCaseCommand()
	reasonCmd := createReasonCommand()
	toggleCmd := createToggleCommand()
	togglesCmd := createTogglesCommand()

	group := client.CommandHandler.BuildCommandGroup(
		"modlog",
		"Configuración y consulta del registro de moderación",
		setChannelCmd,
		viewCmd,
		caseCmd,
		reasonCmd,
		toggleCmd,
		togglesCmd,
	)

	client.CommandHandler.AddGlobalCommand(group)
}
