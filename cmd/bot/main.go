// Package main is the entry point for the ValuamorBot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ValuamorSystems/ValuamorBotGo/internal/commands"
	internalevents "github.com/ValuamorSystems/ValuamorBotGo/internal/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/config"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/database"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/discord"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/errors"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/events"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/logger"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/models"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/mqtt"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/premium"
	"github.com/ValuamorSystems/ValuamorBotGo/pkg/web"
)

// expirySweepInterval is how often premium records are checked for expiry.
const expirySweepInterval = time.Hour

// buyerStore adapts the database service functions to the sweeper.
type buyerStore struct{}

func (buyerStore) ListPremiumBuyers() ([]*models.PremiumBuyer, error) {
	return database.ListPremiumBuyers()
}

func (buyerStore) SavePremiumBuyer(record *models.PremiumBuyer) (*models.PremiumBuyer, error) {
	return database.SavePremiumBuyer(record)
}

// expiryNotifier DMs the user whose premium ran out and mirrors the event.
type expiryNotifier struct {
	session *discordgo.Session
}

func (n *expiryNotifier) NotifyExpired(record *models.PremiumBuyer) error {
	events.Publish(events.TypePremiumExpired, map[string]interface{}{
		"userId":    record.UserID,
		"expiredAt": record.ExpiredAt,
	})

	channel, err := n.session.UserChannelCreate(record.UserID)
	if err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⏰ Premium Expired / Premium Berakhir",
		Description: "Your premium time has run out. Redeem a new code to keep your access. / Waktu premium kamu sudah habis. Tukarkan kode baru untuk mempertahankan aksesmu.",
		Color:       0xED4245,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Valuamor Systems | ValuamorBot Go",
		},
	}
	_, err = n.session.ChannelMessageSendEmbed(channel.ID, embed)
	return err
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting ValuamorBot Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	var sweeper *premium.Sweeper
	errors.Init(cfg.ErrorWebhook, func() {
		if sweeper != nil {
			sweeper.Stop()
		}
		if discordClient != nil {
			if err := discordClient.Stop(); err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database; it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			if err := db.Disconnect(); err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)
	}

	// Initialize MQTT
	mqttClientID := "valuamorbot"
	if !cfg.IsProd() {
		mqttClientID = "valuamorbot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize the event bus, mirrored over MQTT
	events.Init(mqttClient)

	// Initialize web server
	webServer := web.Init(cfg.LogsWebhook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	internalevents.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		if err := discordClient.Stop(); err != nil {
			logger.Error(fmt.Sprintf("Error stopping Discord client: %v", err), "Main")
		}
	}(discordClient)

	// Start the premium expiry sweeper after Discord is connected
	sweeper = premium.NewSweeper(buyerStore{}, &expiryNotifier{session: discordClient.Session})
	sweeper.Start(expirySweepInterval)
	defer sweeper.Stop()

	logger.Success("ValuamorBot Go started successfully!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down ValuamorBot Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
