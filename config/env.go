package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds every configuration value the service reads.
type AppConfig struct {
	Port           string
	Env            string
	StoreDriver    string
	MongoMode      string
	MongoURI       string
	MongoDatabase  string
	TokenFormat    string
	TokenSecret    []byte
	TokenTTL       time.Duration
	UploadDir      string
	PublicBaseURL  string
	CloudinaryURL  string
	ShippingFee    float64
	AllowOrigins   []string
	AdminEmail     string
	AdminPassword  string
	PostmarkToken  string
	EmailSender    string
	ProtectCatalog bool
}

// Load reads the .env file if present, then the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:          getEnv("PORT", "4000"),
		Env:           getEnv("ENVIRONMENT", "development"),
		StoreDriver:   getEnv("STORE_DRIVER", "mongo"),
		MongoMode:     getEnv("MONGO_MODE", "local"),
		MongoDatabase: getEnv("MONGO_DATABASE", "shopper"),
		TokenFormat:   getEnv("TOKEN_FORMAT", "jwt"),
		UploadDir:     getEnv("UPLOAD_DIR", "upload/images"),
		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		PostmarkToken: getEnv("POSTMARK_SERVER_TOKEN", ""),
		EmailSender:   getEnv("EMAIL_SENDER", ""),
	}
	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port), "/")

	switch cfg.StoreDriver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be mongo or memory, got %q", cfg.StoreDriver)
	}

	// Pick the MongoDB URI by mode
	if cfg.MongoMode == "atlas" {
		cfg.MongoURI = getEnv("MONGO_URI_ATLAS", "")
		if cfg.MongoURI == "" && cfg.StoreDriver == "mongo" {
			return nil, fmt.Errorf("MONGO_MODE 'atlas' but MONGO_URI_ATLAS is not set")
		}
	} else {
		cfg.MongoURI = getEnv("MONGO_URI_LOCAL", "mongodb://localhost:27017")
	}

	secret := getEnv("TOKEN_SECRET", "")
	switch cfg.TokenFormat {
	case "jwt":
		if secret == "" {
			return nil, fmt.Errorf("TOKEN_SECRET is not set")
		}
	case "paseto":
		if len(secret) != 32 {
			return nil, fmt.Errorf("TOKEN_SECRET must be 32 characters long for paseto")
		}
	default:
		return nil, fmt.Errorf("TOKEN_FORMAT must be jwt or paseto, got %q", cfg.TokenFormat)
	}
	cfg.TokenSecret = []byte(secret)

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "8h"))
	if err != nil || ttl < 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %v", err)
	}
	cfg.TokenTTL = ttl

	fee, err := strconv.ParseFloat(getEnv("SHIPPING_FEE", "0"), 64)
	if err != nil || fee < 0 {
		return nil, fmt.Errorf("invalid SHIPPING_FEE %q", os.Getenv("SHIPPING_FEE"))
	}
	cfg.ShippingFee = fee

	protect, err := strconv.ParseBool(getEnv("PROTECT_CATALOG", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROTECT_CATALOG: %w", err)
	}
	cfg.ProtectCatalog = protect

	origins := getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}

	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
