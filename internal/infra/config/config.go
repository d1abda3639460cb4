package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds environment-derived settings for the whole application.
type Config struct {
	Port string

	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Postgres order archive (optional; empty disables the pg adapter).
	DatabaseURL string

	// Redis menu cache (optional; empty disables the cache).
	RedisAddr string

	// GCS bucket for menu/appearance images (optional).
	MediaBucket string

	// Checkout handoff
	WhatsAppPhone    string // restaurant number for wa.me deep links
	DeliveryFeeCents int64  // flat delivery surcharge

	// SendGrid (optional; empty disables order mail)
	SendGridAPIKey string
	OrderMailFrom  string
	OrderMailTo    string

	// Local file fallbacks (used when no Firestore project is configured).
	CartFilePath  string
	OrderFilePath string
}

// Load reads environment variables and returns a Config.
func Load() *Config {
	defaultProject := os.Getenv("GCP_PROJECT_ID")

	cfg := &Config{
		Port:                     getenvDefault("PORT", "8080"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		MediaBucket: os.Getenv("MEDIA_BUCKET"),

		WhatsAppPhone:    getenvDefault("WHATSAPP_PHONE", "5583986147817"),
		DeliveryFeeCents: getenvInt64("DELIVERY_FEE_CENTS", 1000),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		OrderMailFrom:  os.Getenv("ORDER_MAIL_FROM"),
		OrderMailTo:    os.Getenv("ORDER_MAIL_TO"),

		CartFilePath:  getenvDefault("CART_FILE", "carts.json"),
		OrderFilePath: getenvDefault("ORDER_FILE", "orders.json"),
	}

	return cfg
}

// GetFirestoreProjectID returns the Firestore/GCP project id.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// GetFirebaseProjectID returns the project id used for Firebase Auth.
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}
