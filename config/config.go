package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendAPI   = "api"
	BackendMongo = "mongo"

	EmailPostmark = "postmark"
	EmailSendGrid = "sendgrid"
	EmailNone     = "none"
)

type Config struct {
	Port            string
	Env             string
	UpstreamTimeout time.Duration
	RequestTimeout  time.Duration

	// Backend selects where orders and reviews go: the storefront API or MongoDB.
	Backend    string
	APIBaseURL string

	JWTSecret string

	MongoURI string
	MongoDB  string

	EmailProvider    string
	PostmarkAPIToken string
	SendGridAPIKey   string
	EmailSender      string
}

// Load reads .env files if present, then the environment.
func Load(files ...string) Config {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load(files...)

	return Config{
		Port:            getenv("PORT", "8000"),
		Env:             getenv("APP_ENV", "production"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),
		RequestTimeout:  parseDuration(getenv("REQUEST_TIMEOUT", "10s"), 10*time.Second),

		Backend:    strings.ToLower(getenv("BACKEND", BackendAPI)),
		APIBaseURL: getenv("API_BASE_URL", "http://localhost:8080/api"),

		JWTSecret: getenv("JWT_SECRET", ""),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "storefront"),

		EmailProvider:    strings.ToLower(getenv("EMAIL_PROVIDER", EmailNone)),
		PostmarkAPIToken: getenv("POSTMARK_API_TOKEN", ""),
		SendGridAPIKey:   getenv("SENDGRID_API_KEY", ""),
		EmailSender:      getenv("EMAIL_SENDER", "store@example.com"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
