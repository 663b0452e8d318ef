package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env            string
	MongoURI       string
	MongoDB        string
	ServerAddr     string
	FrontendOrigin string
	PublicBaseURL  string

	JWTSecret     string
	TokenTTLHours int
	AdminSetupKey string

	BrevoAPIKey      string
	BrevoSenderEmail string
	BrevoSenderName  string
	BrevoSandbox     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	NotifyEmail      string
	ChatWebhookURL   string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioPublicURL string

	RedisURL        string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	RateLimitContact      int
	RateLimitApplications int
	RateLimitWindowSec    int

	Timezone *time.Location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return fallback
}

func Load() (*Config, error) {
	loadDotEnv(".env")
	loc, err := time.LoadLocation(getEnv("TZ", "Asia/Kolkata"))
	if err != nil {
		return nil, err
	}

	mongoURI := getEnv("MONGO_URI", "mongodb://localhost:27017/cawebsite")
	mongoDB := getEnv("MONGO_DB", "")
	if mongoDB == "" {
		mongoDB = mongoDBFromURI(mongoURI)
	}
	if mongoDB == "" {
		mongoDB = "cawebsite"
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		MongoURI:       mongoURI,
		MongoDB:        mongoDB,
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:3000"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 168),
		AdminSetupKey: getEnv("ADMIN_SETUP_KEY", ""),

		BrevoAPIKey:      getEnv("BREVO_API_KEY", ""),
		BrevoSenderEmail: getEnv("BREVO_SENDER_EMAIL", ""),
		BrevoSenderName:  getEnv("BREVO_SENDER_NAME", ""),
		BrevoSandbox:     getEnvBool("BREVO_SANDBOX", false),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		NotifyEmail:      getEnv("NOTIFY_EMAIL", ""),
		ChatWebhookURL:   getEnv("CHAT_WEBHOOK_URL", ""),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "cawebsite"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", true),
		MinioPublicURL: strings.TrimRight(getEnv("MINIO_PUBLIC_URL", ""), "/"),

		RedisURL:        getEnv("REDIS_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),

		RateLimitContact:      getEnvInt("RATE_LIMIT_CONTACT", 5),
		RateLimitApplications: getEnvInt("RATE_LIMIT_APPLICATIONS", 5),
		RateLimitWindowSec:    getEnvInt("RATE_LIMIT_WINDOW_SEC", 60),

		Timezone: loc,
	}

	return cfg, nil
}

func mongoDBFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return ""
	}
	// mongodb URIs sometimes include extra path segments; we only support the first one as db name.
	if idx := strings.Index(db, "/"); idx >= 0 {
		db = db[:idx]
	}
	return db
}

func loadDotEnv(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		_ = os.Setenv(key, val)
	}
}
