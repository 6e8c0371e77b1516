package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	ServerAddress string
	DatabaseURL   string
	Timezone      string
	AppURL        string

	JWTSecret     string
	AdminUsername string
	AdminPassword string

	TelegramToken  string
	TelegramChatID int64
}

var instance *AppConfig
var once sync.Once

func GetAppConfig() *AppConfig {
	once.Do(func() {
		instance = &AppConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Infof("No .env file loaded: %s", err.Error())
		}

		instance.ServerAddress = getEnv("SERVER_ADDRESS", ":8080")

		instance.DatabaseURL = getEnv("DATABASE_URL", "")
		if instance.DatabaseURL == "" {
			logrus.Fatal("could not get db url")
		}

		instance.Timezone = getEnv("TIMEZONE", "America/Lima")
		instance.AppURL = getEnv("APP_URL", "http://127.0.0.1:8080")

		instance.JWTSecret = getEnv("JWT_SECRET", "")
		if instance.JWTSecret == "" {
			logrus.Fatal("could not get jwt secret")
		}

		instance.AdminUsername = getEnv("ADMIN_USERNAME", "admin")
		instance.AdminPassword = getEnv("ADMIN_PASSWORD", "")

		// Optional: summary notifications stay off without a token.
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		instance.TelegramChatID = getEnvAsInt("TELEGRAM_CHAT_ID", 0)
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return int64(val)
	}

	return defaultVal
}
