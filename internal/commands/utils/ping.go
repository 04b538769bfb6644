// Package utils - /utils ping command
package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
)

// createPingCommand creates the /utils ping subcommand
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Comprueba la latencia del bot y del almacenamiento",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the /utils ping command
func pingHandler(ctx *discord.CommandContext) error {
	heartbeat := ctx.Client.Session.HeartbeatLatency().Milliseconds()

	opCtx, cancel := opContext()
	defer cancel()

	latency, err := modlog.Get().Store().Backend().Ping(opCtx)

	storeLine := fmt.Sprintf("💾 Almacenamiento: %dms", latency.Milliseconds())
	if err != nil {
		storeLine = "💾 Almacenamiento: ❌ sin respuesta"
	}

	return ctx.Reply(fmt.Sprintf("🏓 Pong!\n• Gateway: %dms\n• %s", heartbeat, storeLine))
}
