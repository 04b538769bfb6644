// Package appeal provides the /appeal command group and the persistent
// ban-appeal button and modal workflow.
package appeal

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// Custom ID prefixes for the persistent appeal components
const (
	buttonPrefix = "appeal_button_"
	modalPrefix  = "appeal_modal_"
)

// opTimeout bounds every storage round-trip made from a command handler
const opTimeout = 10 * time.Second

// opContext returns the bounded context used for storage calls
func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// RegisterAppealCommands registers the /appeal subcommands and the
// component/modal handlers for the appeal workflow
func RegisterAppealCommands(client *discord.ExtendedClient) {
	setupCmd := createSetupCommand()
	setChannelCmd := createSetChannelCommand()
	pingCmd := createPingCommand()

	group := client.CommandHandler.BuildCommandGroup(
		"appeal",
		"Configuración de apelaciones de baneo",
		setupCmd,
		setChannelCmd,
		pingCmd,
	)

	client.CommandHandler.AddGlobalCommand(group)

	client.RegisterComponentHandler(buttonPrefix, appealButtonHandler)
	client.RegisterModalHandler(modalPrefix, appealModalHandler)
}
