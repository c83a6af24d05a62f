package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	LogLevel         string
	ServerRunAddress string
	DatabaseURI      string
	MigrationsPath   string
	BaseURL          string
	SMTPAddress      string
	SMTPUser         string
	SMTPPassword     string
	SMTPFrom         string
	DevMode          bool
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	LogLevel = os.Getenv("LOG_LEVEL")
	if LogLevel == "" {
		LogLevel = "info"
	}

	ServerRunAddress = os.Getenv("SERVER_RUN_ADDRESS")
	if ServerRunAddress == "" {
		ServerRunAddress = "0.0.0.0:8080"
	}

	DatabaseURI = os.Getenv("DATABASE_URI")
	if DatabaseURI == "" {
		DatabaseURI = "host=db user=postgres password=password dbname=giftlist sslmode=disable"
	}

	MigrationsPath = os.Getenv("MIGRATIONS_PATH")
	if MigrationsPath == "" {
		MigrationsPath = "migrations"
	}

	BaseURL = os.Getenv("BASE_URL")
	if BaseURL == "" {
		BaseURL = "http://localhost:8080"
	}

	SMTPAddress = os.Getenv("SMTP_ADDRESS")
	SMTPUser = os.Getenv("SMTP_USER")
	SMTPPassword = os.Getenv("SMTP_PASSWORD")
	SMTPFrom = os.Getenv("SMTP_FROM")
	if SMTPFrom == "" {
		SMTPFrom = "noreply@giftlist.local"
	}

	// Dev mode returns recovery tokens in API responses instead of
	// sending email.
	DevMode = os.Getenv("DEV_MODE") == "true"
}
