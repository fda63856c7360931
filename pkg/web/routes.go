// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"time"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/premium/stats", premiumStatsHandler)
		api.GET("/codes/stats", codeStatsHandler)
		api.GET("/partner/stats", partnerStatsHandler)
	}

	s.GET("/ws/events", eventsWebsocketHandler)
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "ValuamorBot Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// premiumStatsHandler summarizes the premium buyer records
func premiumStatsHandler(c *gin.Context) {
	buyers, err := database.ListPremiumBuyers()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UnixMilli()
	var active, lifetime, expired int
	for _, buyer := range buyers {
		switch {
		case buyer.Lifetime:
			lifetime++
			active++
		case buyer.IsActiveAt(now):
			active++
		default:
			expired++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(buyers),
		"active":   active,
		"lifetime": lifetime,
		"expired":  expired,
	})
}

// codeStatsHandler summarizes the redeem code pool
func codeStatsHandler(c *gin.Context) {
	codes, err := database.ListRedeemCodes()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	byRank := make(map[models.Rank]int)
	used := 0
	for _, code := range codes {
		byRank[code.Rank]++
		if code.Used {
			used++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(codes),
		"used":   used,
		"byRank": byRank,
	})
}

// partnerStatsHandler summarizes partner requests across all guilds
func partnerStatsHandler(c *gin.Context) {
	requests, err := database.ListPartnerRequests("", "")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	byStatus := make(map[models.PartnerStatus]int)
	for _, req := range requests {
		byStatus[req.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    len(requests),
		"byStatus": byStatus,
	})
}
