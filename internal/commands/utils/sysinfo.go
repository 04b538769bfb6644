// Package utils - /utils sysinfo command
package utils

import (
	"fmt"
	"runtime"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// createSysinfoCommand creates the /utils sysinfo subcommand
func createSysinfoCommand() *discord.Command {
	return discord.NewCommand(
		"sysinfo",
		"Muestra información del sistema donde corre el bot",
		"utils",
		sysinfoHandler,
	).WithUserPermissions(discordgo.PermissionAdministrator)
}

// sysinfoHandler handles the /utils sysinfo command
func sysinfoHandler(ctx *discord.CommandContext) error {
	// Goroutine para no bloquear el hilo principal
	go func() {
		defer errors.RecoverMiddleware()()

		if err := ctx.Defer(); err != nil {
			return
		}

		hostLine := "Desconocido"
		if info, err := host.Info(); err == nil {
			hostLine = fmt.Sprintf("%s %s (%s)", info.Platform, info.PlatformVersion, info.KernelArch)
		}

		cpuLine := fmt.Sprintf("%d núcleos", runtime.NumCPU())
		if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
			cpuLine = fmt.Sprintf("%d núcleos, %.1f%% en uso", runtime.NumCPU(), percents[0])
		}

		memLine := "Desconocido"
		if vm, err := mem.VirtualMemory(); err == nil {
			memLine = fmt.Sprintf("%.1f GB / %.1f GB (%.1f%%)",
				float64(vm.Used)/1024/1024/1024,
				float64(vm.Total)/1024/1024/1024,
				vm.UsedPercent,
			)
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		embed := &discordgo.MessageEmbed{
			Title: "🖥️ Información del Sistema",
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "💻 Sistema", Value: hostLine},
				{Name: "⚙️ CPU", Value: cpuLine, Inline: true},
				{Name: "🧠 RAM", Value: memLine, Inline: true},
				{Name: "🐹 Proceso", Value: fmt.Sprintf("%.2f MB, %d goroutines", float64(m.Alloc)/1024/1024, runtime.NumGoroutine()), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		ctx.EditReplyEmbed(embed)
	}()
	return nil
}
