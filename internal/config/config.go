package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Primary database (users, pilot profiles, jobs, processing records)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Legacy auth database (credentials, refresh tokens)
	AuthDBHost     string
	AuthDBPort     string
	AuthDBUser     string
	AuthDBPassword string
	AuthDBName     string
	AuthDBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// External processing service
	PythonAPIURL     string
	PythonAPITimeout time.Duration
	UploadDir        string

	// Mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Admin
	AdminEmails    string
	AdminUserIDs   string
	AdminToken     string
	DevAdminBypass bool

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "compliancedrone"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AuthDBHost:     getEnv("AUTH_DB_HOST", "localhost"),
		AuthDBPort:     getEnv("AUTH_DB_PORT", "5432"),
		AuthDBUser:     getEnv("AUTH_DB_USER", "postgres"),
		AuthDBPassword: getEnv("AUTH_DB_PASSWORD", ""),
		AuthDBName:     getEnv("AUTH_DB_NAME", "compliancedrone_auth"),
		AuthDBSSLMode:  getEnv("AUTH_DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		PythonAPIURL:     getEnv("PYTHON_API", "http://python-api:8000"),
		PythonAPITimeout: parseDuration(getEnv("PYTHON_API_TIMEOUT", "120s")),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads/tmp"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "pilots@compliancedrone.com"),

		AdminEmails:    getEnv("ADMIN_EMAILS", ""),
		AdminUserIDs:   getEnv("ADMIN_USER_IDS", ""),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		DevAdminBypass: getEnv("DEV_ADMIN_BYPASS", "") == "true",

		Port:        getEnv("PORT", "5000"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return dsn(c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) AuthDSN() string {
	return dsn(c.AuthDBHost, c.AuthDBUser, c.AuthDBPassword, c.AuthDBName, c.AuthDBPort, c.AuthDBSSLMode)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func dsn(host, user, password, name, port, sslmode string) string {
	return "host=" + host +
		" user=" + user +
		" password=" + password +
		" dbname=" + name +
		" port=" + port +
		" sslmode=" + sslmode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
