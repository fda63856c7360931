// Package events provides event handlers for the bot
package events

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
)

const presenceRotateInterval = 30 * time.Second

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.Session.AddHandler(onReady)
	client.Session.AddHandler(onDebug)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot connected: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Connected to %d servers", len(r.Guilds)), "Ready")

	go rotatePresence(s)
}

// rotatePresence cycles the bot status, including a live clock entry.
func rotatePresence(s *discordgo.Session) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		loc = time.UTC
	}

	statuses := []func() string{
		func() string { return "💎 /redeem for your key" },
		func() string { return fmt.Sprintf("🕒 %s WIB", time.Now().In(loc).Format("15:04")) },
		func() string { return "🤝 /partner to apply" },
		func() string { return "📊 /getstatus" },
	}

	i := 0
	for {
		if err := s.UpdateGameStatus(0, statuses[i%len(statuses)]()); err != nil {
			logger.Error(fmt.Sprintf("Error setting status: %v", err), "Ready")
		}
		i++
		time.Sleep(presenceRotateInterval)
	}
}

func onDebug(s *discordgo.Session, log string) {
	logger.Debug(log, "DiscordGO")
}
