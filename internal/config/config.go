package config

import (
	"errors"
	"os"
)

type Config struct {
	AppPort string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string

	AgoraAppID          string
	AgoraAppCertificate string

	ChatAPIURL string
	ChatAPIKey string
}

func Load() Config {

	cfg := Config{

		AppPort: getEnv("APP_PORT", "5000"),

		DatabaseDSN: os.Getenv("DATABASE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MailHost:     getEnv("MAIL_HOST", "smtp.gmail.com"),
		MailPort:     getEnv("MAIL_PORT", "587"),
		MailUsername: os.Getenv("MAIL_USERNAME"),
		MailPassword: os.Getenv("MAIL_PASSWORD"),

		AgoraAppID:          os.Getenv("AGORA_APP_ID"),
		AgoraAppCertificate: os.Getenv("AGORA_APP_CERTIFICATE"),

		ChatAPIURL: os.Getenv("CHAT_API_URL"),
		ChatAPIKey: os.Getenv("CHAT_API_KEY"),
	}

	return cfg
}

// Validate reports missing material the process cannot run without.
// Signing configuration is a startup failure, never a per-request one.
func (c Config) Validate() error {
	if c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if c.RedisAddr == "" {
		return errors.New("config: REDIS_ADDR is required")
	}
	if c.AgoraAppID == "" || c.AgoraAppCertificate == "" {
		return errors.New("config: AGORA_APP_ID and AGORA_APP_CERTIFICATE are required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
