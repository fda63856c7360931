// Package config provides configuration management for the bot.
// It loads environment variables and makes them available throughout the application.
package config

import (
	"os"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
)

// SecretsFile is the local fallback for sensitive values. An environment
// variable with the same key always wins over the file.
const SecretsFile = "secrets.json"

// Config holds all configuration values for the bot
type Config struct {
	// Discord
	BotToken   string
	DevGuildID string

	// Access control
	OwnerUsername       string
	DevelopmentUsername string
	DevelopmentUserID   string
	AdminRoles          []string

	// MongoDB
	MongoDBURL string
	DBName     string

	// MQTT
	MQTTHost     string
	MQTTPort     string
	MQTTUser     string
	MQTTPassword string

	// Web Server
	Port string

	// Environment
	Environment string

	// Webhooks
	ErrorWebhook string
	LogsWebhook  string
}

var (
	Version   = "Dev-Local"
	BuildTime = "Today"
)

// cfg holds the global configuration instance
var (
	cfg     *Config
	cfgOnce sync.Once
)

// resetForTesting resets the configuration for testing purposes.
// This function should only be called from test code.
func resetForTesting() {
	cfg = nil
	cfgOnce = sync.Once{}
}

// loadSecrets reads the local secrets file. A missing or malformed file is
// treated as empty.
func loadSecrets() map[string]string {
	data, err := os.ReadFile(SecretsFile)
	if err != nil {
		return map[string]string{}
	}
	secrets := map[string]string{}
	if err := json.Unmarshal(data, &secrets); err != nil {
		return map[string]string{}
	}
	return secrets
}

// loadConfig performs the actual configuration loading
func loadConfig() {
	// Load .env file if it exists (ignoring error if it doesn't)
	_ = godotenv.Load()

	secrets := loadSecrets()

	cfg = &Config{
		// Discord
		BotToken:   getSecret(secrets, "DISCORD_BOT_TOKEN", ""),
		DevGuildID: getEnv("devGuildId", ""),

		// Access control
		OwnerUsername:       getEnv("ownerUsername", "tc_comunity"),
		DevelopmentUsername: getEnv("developmentUsername", ""),
		DevelopmentUserID:   getEnv("developmentUserId", ""),
		AdminRoles:          splitList(getEnv("adminRoles", "")),

		// MongoDB
		MongoDBURL: getSecret(secrets, "mongodbUrl", "mongodb://localhost:27017"),
		DBName:     getEnv("dbName", "Valuamor"),

		// MQTT
		MQTTHost:     getEnv("MQTT_Host", "localhost"),
		MQTTPort:     getEnv("MQTT_Port", "1883"),
		MQTTUser:     getEnv("MQTT_User", ""),
		MQTTPassword: getSecret(secrets, "MQTT_Password", ""),

		// Web Server
		Port: getEnv("PORT", "3000"),

		// Environment
		Environment: getEnv("enviroment", "dev"),

		// Webhooks
		ErrorWebhook: getEnv("errorWebhook", ""),
		LogsWebhook:  getEnv("logsWebhook", ""),
	}
}

// Load initializes the configuration from environment variables
func Load() (*Config, error) {
	cfgOnce.Do(loadConfig)
	return cfg, nil
}

// Get returns the current configuration
func Get() *Config {
	// Use sync.Once to ensure thread-safe initialization if Load wasn't called
	cfgOnce.Do(loadConfig)
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getSecret resolves a key through the precedence chain:
// environment variable, then secrets file, then default.
func getSecret(secrets map[string]string, key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := secrets[key]; value != "" {
		return value
	}
	return defaultValue
}

// splitList parses a comma-separated env value into a trimmed slice.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// IsProd returns true if the environment is production
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}

// IsOwner reports whether the given username is the configured owner.
func (c *Config) IsOwner(username string) bool {
	return username != "" && username == c.OwnerUsername
}

// IsDevelopment reports whether the given user is the configured
// development operator, by username or id.
func (c *Config) IsDevelopment(username, userID string) bool {
	if c.DevelopmentUsername != "" && username == c.DevelopmentUsername {
		return true
	}
	return c.DevelopmentUserID != "" && userID == c.DevelopmentUserID
}
