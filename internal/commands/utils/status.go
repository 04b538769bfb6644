// Package utils - /utils status command
package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/modlog"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot y sus servicios",
		"utils",
		statusHandler,
	)
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	storeStatus, _ := modlog.Get().Store().Backend().Status()

	mqttLine := "⚪ Desactivado"
	if feed := mqtt.Get(); feed != nil {
		if feed.IsConnected() {
			mqttLine = "🟢 Conectado"
		} else {
			mqttLine = "🔴 Desconectado"
		}
	}

	return ctx.Reply(fmt.Sprintf(
		"📊 **Estado del Bot**\n"+
			"• Bot: 🟢 Online\n"+
			"• Almacenamiento: %s\n"+
			"• MQTT: %s\n"+
			"• Servidores: %d",
		storeStatus,
		mqttLine,
		ctx.Client.GuildCount(),
	))
}
