package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// HTTP
	ApiPort        string
	ServiceApiPort string

	// State persistence
	StorageBackend string // "file" (default), "redis" or "mongo"
	DataDir        string

	// Redis (task broker; also the "redis" state backend)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MongoDB (only used when StorageBackend == "mongo")
	MongoURI    string
	MongoDbName string

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// External lookups
	FipeBaseURL   string
	CepBaseURL    string
	LookupTimeout time.Duration

	// Simulated async behaviour
	PaymentProcessingDelay time.Duration
	EnquiryAutoReplyDelay  time.Duration

	// AWS S3 (listing images)
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	ImageBaseS3URL     string
	ImageMaxDimension  int

	// Email
	SmtpHost        string
	SmtpPort        int
	SmtpUsername    string
	SmtpPassword    string
	SmtpFromAddress string

	// App Defaults
	AppName string

	// Rate Limiting Defaults
	RateLimitSoftBucketSize int
	RateLimitSoftRefillRate int // tokens per second
	RateLimitHardBucketSize int
	RateLimitHardRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{
		RunMode: runMode, // Set from flag
	}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.ApiPort = getEnv("API_PORT", "8080")
	cfg.ServiceApiPort = getEnv("SERVICE_API_PORT", "8081")
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", "file")
	cfg.DataDir = getEnv("DATA_DIR", "./data")

	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	cfg.MongoURI = getEnv("MONGO_URI", "")
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "feirastudio")
	if cfg.StorageBackend == "mongo" && cfg.MongoURI == "" {
		return nil, fmt.Errorf("STORAGE_BACKEND=mongo requires MONGO_URI")
	}

	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}

	cfg.FipeBaseURL = getEnv("FIPE_BASE_URL", "https://parallelum.com.br/fipe/api/v1")
	cfg.CepBaseURL = getEnv("CEP_BASE_URL", "https://viacep.com.br/ws")

	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.ImageBaseS3URL = getEnv("IMAGE_BASE_S3_URL", "")

	cfg.SmtpHost = getEnv("SMTP_HOST", "")
	cfg.SmtpUsername = getEnv("SMTP_USERNAME", "")
	cfg.SmtpPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SmtpFromAddress = getEnv("SMTP_FROM_ADDRESS", "noreply@feirastudio.example.com")

	cfg.AppName = getEnv("APP_NAME", "FeiraStudio")

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	lookupTimeoutSeconds, err := strconv.ParseInt(getEnv("LOOKUP_TIMEOUT_SECONDS", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_TIMEOUT_SECONDS: %w", err)
	}
	cfg.LookupTimeout = time.Duration(lookupTimeoutSeconds) * time.Second

	paymentDelayMs, err := strconv.ParseInt(getEnv("PAYMENT_PROCESSING_DELAY_MS", "2500"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_PROCESSING_DELAY_MS: %w", err)
	}
	cfg.PaymentProcessingDelay = time.Duration(paymentDelayMs) * time.Millisecond

	autoReplyDelaySeconds, err := strconv.ParseInt(getEnv("ENQUIRY_AUTO_REPLY_DELAY_SECONDS", "5"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ENQUIRY_AUTO_REPLY_DELAY_SECONDS: %w", err)
	}
	cfg.EnquiryAutoReplyDelay = time.Duration(autoReplyDelaySeconds) * time.Second

	cfg.SmtpPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.ImageMaxDimension, err = strconv.Atoi(getEnv("IMAGE_MAX_DIMENSION", "2048"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_DIMENSION: %w", err)
	}

	// Rate Limiting
	cfg.RateLimitSoftBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_BUCKET_SIZE", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitSoftRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_SOFT_REFILL_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SOFT_REFILL_RATE: %w", err)
	}
	cfg.RateLimitHardBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitHardRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_HARD_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_HARD_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
