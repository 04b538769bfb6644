// Package modlog implements the moderation case log: recording actions,
// announcing them in the configured log channel and keeping both in sync.
package modlog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// Embed colors per action type
const (
	colorRed      = 0xED4245
	colorGreen    = 0x57F287
	colorOrange   = 0xE67E22
	colorGold     = 0xF1C40F
	colorBlue     = 0x3498DB
	colorYellow   = 0xFEE75C
	colorPurple   = 0x9B59B6
	colorDarkGrey = 0x607D8B
	colorGreyple  = 0x99AAB5
	colorBlurple  = 0x5865F2
)

var actionColors = map[models.ActionType]int{
	models.ActionBan:               colorRed,
	models.ActionUnban:             colorGreen,
	models.ActionKick:              colorOrange,
	models.ActionTimeout:           colorGold,
	models.ActionRemoveTimeout:     colorBlue,
	models.ActionWarn:              colorYellow,
	models.ActionAIAlert:           colorPurple,
	models.ActionAIDeleteRequested: colorDarkGrey,
}

// AIDetails carries the extra context attached to cases opened by the
// automated moderation system. It is rendered but not persisted.
type AIDetails struct {
	RuleViolated   string
	Reasoning      string
	MessageContent string
	Model          string
}

// FormatDuration renders a duration as "Xd Yh Zm Ws", omitting zero units.
// A zero duration renders as "0s".
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	days := total / 86400
	total %= 86400
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	seconds := total % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dd ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dh ", hours)
	}
	if minutes > 0 {
		fmt.Fprintf(&b, "%dm ", minutes)
	}
	if seconds > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}
	return strings.TrimSpace(b.String())
}

// Truncate shortens s to at most max runes, replacing the tail with "...".
// Cutting on rune boundaries keeps multi-byte text valid for Discord embeds.
func Truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}

// renderCase builds the log channel embed for a recorded case.
func renderCase(c *models.Case, guildName string, details *AIDetails) *discordgo.MessageEmbed {
	automated := c.Moderator.IsAutomated()

	color := colorGreyple
	if automated {
		color = colorBlurple
	} else if mapped, ok := actionColors[c.ActionType]; ok {
		color = mapped
	}

	titlePrefix := c.ActionType.Title()
	if automated {
		titlePrefix = "🤖 Acción de Moderación Automática"
	}

	moderatorDisplay := fmt.Sprintf("<@%d> (`%d`)", c.Moderator.ID(), c.Moderator.ID())
	if automated {
		moderatorDisplay = "Sistema Automático"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Usuario", Value: fmt.Sprintf("<@%d> (`%d`)", c.TargetUserID, c.TargetUserID), Inline: true},
		{Name: "Moderador", Value: moderatorDisplay, Inline: true},
	}

	if details != nil {
		if details.RuleViolated != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Regla Infringida", Value: details.RuleViolated,
			})
		}
		if details.Reasoning != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Razón / Análisis", Value: c.ReasonOr(details.Reasoning),
			})
		} else {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Razón", Value: c.ReasonOr("Sin razón especificada."),
			})
		}
		if details.MessageContent != "" {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Contenido del Mensaje", Value: Truncate(details.MessageContent, 1000),
			})
		}
	} else {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Razón", Value: c.ReasonOr("Sin razón especificada."),
		})
	}

	if c.DurationSeconds != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Duración", Value: FormatDuration(c.Duration()), Inline: true,
		})
		if c.ActionType == models.ActionTimeout {
			expires := c.Timestamp.Add(c.Duration())
			fields = append(fields, &discordgo.MessageEmbedField{
				Name: "Expira", Value: fmt.Sprintf("<t:%d:R>", expires.Unix()), Inline: true,
			})
		}
	}

	footer := fmt.Sprintf("Servidor: %s (%d)", guildName, c.GuildID)
	if guildName == "" {
		footer = fmt.Sprintf("Servidor: %d", c.GuildID)
	}
	if automated && details != nil && details.Model != "" {
		footer += " • Modelo: " + details.Model
	}

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s | Caso #%d", titlePrefix, c.CaseID),
		Color:     color,
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: footer},
		Timestamp: c.Timestamp.UTC().Format(time.RFC3339),
	}
}
