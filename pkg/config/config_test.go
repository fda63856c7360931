package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("DISCORD_BOT_TOKEN", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("DISCORD_BOT_TOKEN")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestGetSecretPrecedence(t *testing.T) {
	secrets := map[string]string{"mongodbUrl": "mongodb://from-file:27017"}

	// File value is used when the env var is unset
	os.Unsetenv("mongodbUrl")
	if got := getSecret(secrets, "mongodbUrl", "fallback"); got != "mongodb://from-file:27017" {
		t.Errorf("getSecret() = %v, want file value", got)
	}

	// Env var wins over the file
	os.Setenv("mongodbUrl", "mongodb://from-env:27017")
	defer os.Unsetenv("mongodbUrl")
	if got := getSecret(secrets, "mongodbUrl", "fallback"); got != "mongodb://from-env:27017" {
		t.Errorf("getSecret() = %v, want env value", got)
	}

	// Default when neither source has the key
	if got := getSecret(secrets, "missingKey", "fallback"); got != "fallback" {
		t.Errorf("getSecret() = %v, want %v", got, "fallback")
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v, want nil", got)
	}

	got := splitList("111, 222 ,333,,")
	want := []string{"111", "222", "333"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitList() = %v, want %v", got, want)
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestIsOwner(t *testing.T) {
	resetForTesting()
	os.Setenv("ownerUsername", "valuamor_owner")
	defer os.Unsetenv("ownerUsername")
	config, _ := Load()

	if !config.IsOwner("valuamor_owner") {
		t.Error("IsOwner() should return true for the configured owner")
	}
	if config.IsOwner("someone_else") {
		t.Error("IsOwner() should return false for other users")
	}
	if config.IsOwner("") {
		t.Error("IsOwner() should return false for empty username")
	}
}

func TestIsDevelopment(t *testing.T) {
	resetForTesting()
	os.Setenv("developmentUsername", "dev_user")
	os.Setenv("developmentUserId", "123456789")
	defer func() {
		os.Unsetenv("developmentUsername")
		os.Unsetenv("developmentUserId")
	}()
	config, _ := Load()

	if !config.IsDevelopment("dev_user", "") {
		t.Error("IsDevelopment() should match by username")
	}
	if !config.IsDevelopment("", "123456789") {
		t.Error("IsDevelopment() should match by user id")
	}
	if config.IsDevelopment("other", "987654321") {
		t.Error("IsDevelopment() should return false for non-development users")
	}
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

func TestDefaultValues(t *testing.T) {
	// Clear all environment variables
	os.Unsetenv("DISCORD_BOT_TOKEN")
	os.Unsetenv("devGuildId")
	os.Unsetenv("mongodbUrl")
	os.Unsetenv("dbName")
	os.Unsetenv("MQTT_Host")
	os.Unsetenv("MQTT_Port")
	os.Unsetenv("PORT")
	os.Unsetenv("enviroment")
	os.Unsetenv("ownerUsername")

	resetForTesting()
	config, _ := Load()

	// Check default values
	if config.MongoDBURL != "mongodb://localhost:27017" {
		t.Errorf("MongoDBURL default = %v, want %v", config.MongoDBURL, "mongodb://localhost:27017")
	}

	if config.DBName != "Valuamor" {
		t.Errorf("DBName default = %v, want %v", config.DBName, "Valuamor")
	}

	if config.MQTTHost != "localhost" {
		t.Errorf("MQTTHost default = %v, want %v", config.MQTTHost, "localhost")
	}

	if config.MQTTPort != "1883" {
		t.Errorf("MQTTPort default = %v, want %v", config.MQTTPort, "1883")
	}

	if config.Port != "3000" {
		t.Errorf("Port default = %v, want %v", config.Port, "3000")
	}

	if config.Environment != "dev" {
		t.Errorf("Environment default = %v, want %v", config.Environment, "dev")
	}

	if config.OwnerUsername != "tc_comunity" {
		t.Errorf("OwnerUsername default = %v, want %v", config.OwnerUsername, "tc_comunity")
	}
}
