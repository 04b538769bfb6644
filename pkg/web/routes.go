// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/storage"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server, store *storage.Service) {
	s.GET("/health", healthHandler)

	api := s.Group("/api")
	{
		api.GET("/status", statusHandler(store))
		api.GET("/bot", botInfoHandler)
		api.GET("/guilds/:id/cases", guildCasesHandler(store))
	}
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

// statusHandler returns the bot and storage status
func statusHandler(store *storage.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := discord.Get()

		storeStatus, storeOnline := store.Backend().Status()

		botOnline := false
		if client != nil {
			botOnline = client.IsReady()
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"storage": gin.H{
				"status":   storeStatus,
				"isOnline": storeOnline,
			},
			"bot": gin.H{
				"isOnline": botOnline,
			},
		})
	}
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"guilds":   client.GuildCount(),
		"isReady":  client.IsReady(),
	})
}

// guildCasesHandler returns the most recent moderation cases for a guild
func guildCasesHandler(store *storage.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "El ID del servidor debe ser numérico.",
			})
			return
		}

		limit := storage.DefaultCaseLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 200 {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "Bad Request",
					"message": "El límite debe ser un número entre 1 y 200.",
				})
				return
			}
			limit = parsed
		}

		cases := store.GuildCases(c.Request.Context(), guildID, limit)

		c.JSON(http.StatusOK, gin.H{
			"guildId": guildID,
			"count":   len(cases),
			"cases":   cases,
		})
	}
}
