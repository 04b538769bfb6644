// Package utils - /utils uptime command
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
)

// createUptimeCommand creates the /utils uptime subcommand
func createUptimeCommand() *discord.Command {
	return discord.NewCommand(
		"uptime",
		"Muestra cuánto tiempo lleva encendido el bot",
		"utils",
		uptimeHandler,
	)
}

// uptimeHandler handles the /utils uptime command
func uptimeHandler(ctx *discord.CommandContext) error {
	uptime := time.Since(ctx.Client.StartTime)
	return ctx.Reply(fmt.Sprintf("⏱️ El bot lleva encendido **%s** (desde <t:%d:F>).",
		formatUptime(uptime),
		ctx.Client.StartTime.Unix(),
	))
}

// formatUptime formats a time.Duration into a human-readable string
func formatUptime(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d días", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d horas", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutos", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d segundos", seconds))
	}

	return strings.Join(parts, ", ")
}
