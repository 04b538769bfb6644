// Package utils provides diagnostic and informational commands under /utils
package utils

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

// RegisterUtilsCommands registers all /utils subcommands
func RegisterUtilsCommands(client *discord.ExtendedClient) {
	pingCmd := createPingCommand()
	statusCmd := createStatusCommand()
	creditsCmd := createCreditsCommand()
	sysinfoCmd := createSysinfoCommand()
	uptimeCmd := createUptimeCommand()

	group := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Comandos de diagnóstico e información",
		pingCmd,
		statusCmd,
		creditsCmd,
		sysinfoCmd,
		uptimeCmd,
	)

	client.CommandHandler.AddGlobalCommand(group)
}
