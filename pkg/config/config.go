package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Store       StoreConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Log         LogConfig
	Storage     StorageConfig
	AI          AIConfig
	Payment     PaymentConfig
	Chat        ChatConfig
	Application ApplicationConfig
	Scheduler   SchedulerConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Env         string
	CorsOrigins string // comma separated
}

// StoreConfig เลือก repository implementation ตอน startup (postgres, memory)
type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string // silent, error, warn, info
}

// NATSConfig ใช้ fan-out chat events ข้าม instance; ว่าง = in-process bus
type NATSConfig struct {
	URL string
}

// RedisConfig ใช้สำหรับ rate limit การส่งข้อความ; ว่าง = in-memory limiter
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level      string
	Format     string
	Output     string
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type StorageConfig struct {
	Type          string // local, s3, r2
	BasePath      string // local: ./uploads
	BaseURL       string // local: http://localhost:8080/files
	MaxUploadSize int64
	SignedURLTTL  time.Duration
	S3            S3Config
	R2            R2Config
}

// S3Config สำหรับ MinIO หรือ S3-compatible storage
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

// R2Config สำหรับ Cloudflare R2 ผ่าน aws-sdk-go-v2
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// PaymentConfig Stripe subscriptions; ไม่มี secret key = endpoint subscription ตอบ 500
type PaymentConfig struct {
	StripeSecretKey string
	ProPriceID      string
	Timeout         time.Duration
}

// Prices plan -> Stripe price id (เฉพาะที่ตั้งค่าไว้)
func (p PaymentConfig) Prices() map[string]string {
	prices := map[string]string{}
	if p.ProPriceID != "" {
		prices["pro"] = p.ProPriceID
	}
	return prices
}

type ChatConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

type ApplicationConfig struct {
	// AllowRedecide เปิดให้เปลี่ยน status หลังตัดสินแล้ว (พฤติกรรมเดิมของระบบเก่า)
	AllowRedecide bool
}

type SchedulerConfig struct {
	JobSweepCron string
}

func LoadConfig() (*Config, error) {
	// ไม่มี .env ก็ไม่เป็นไร ใช้ environment variables แทน
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "BuildBoard API"),
			Port:        getEnv("APP_PORT", "8080"),
			Env:         getEnv("APP_ENV", "development"),
			CorsOrigins: getEnv("CORS_ALLOW_ORIGINS", ""),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "buildboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
			TTL:    getEnvDuration("JWT_TTL", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/api.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Storage: StorageConfig{
			Type:          strings.ToLower(getEnv("STORAGE_TYPE", "local")),
			BasePath:      getEnv("STORAGE_BASE_PATH", "./uploads"),
			BaseURL:       getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
			MaxUploadSize: getEnvInt64("STORAGE_MAX_UPLOAD_SIZE", 10*1024*1024),
			SignedURLTTL:  getEnvDuration("STORAGE_SIGNED_URL_TTL", 15*time.Minute),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "buildboard"),
				UseSSL:    getEnvBool("S3_USE_SSL", false),
				Region:    getEnv("S3_REGION", "us-east-1"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
			R2: R2Config{
				Endpoint:  getEnv("R2_ENDPOINT", ""),
				AccessKey: getEnv("R2_ACCESS_KEY", ""),
				SecretKey: getEnv("R2_SECRET_KEY", ""),
				Bucket:    getEnv("R2_BUCKET", "buildboard"),
				PublicURL: getEnv("R2_PUBLIC_URL", ""),
			},
		},
		AI: AIConfig{
			APIKey:  getEnv("AI_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:   getEnv("AI_MODEL", "gemini-1.5-flash"),
			Timeout: getEnvDuration("AI_TIMEOUT", 20*time.Second),
		},
		Payment: PaymentConfig{
			StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			ProPriceID:      getEnv("STRIPE_PRICE_PRO", ""),
			Timeout:         getEnvDuration("PAYMENT_TIMEOUT", 20*time.Second),
		},
		Chat: ChatConfig{
			RateLimit:  getEnvInt("CHAT_RATE_LIMIT", 20),
			RateWindow: getEnvDuration("CHAT_RATE_WINDOW", 10*time.Second),
		},
		Application: ApplicationConfig{
			AllowRedecide: getEnvBool("APPLICATION_ALLOW_REDECIDE", false),
		},
		Scheduler: SchedulerConfig{
			JobSweepCron: getEnv("JOB_SWEEP_CRON", "*/15 * * * *"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvDuration รับทั้งรูปแบบ "15m" และจำนวนวินาทีล้วน "900"
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UsesMemoryStore true เมื่อรันแบบไม่มี database (demo / test)
func (c *Config) UsesMemoryStore() bool {
	return c.Store.Driver == "memory"
}
