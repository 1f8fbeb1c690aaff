package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	UploadDir string
	BaseURL   string // ใช้ประกอบลิงก์ในอีเมลแจ้งเตือน

	// บัญชี admin ตั้งต้น (seed ครั้งแรก)
	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	port := getEnv("PORT", "3000")

	return &Config{
		DBSource:      getEnv("DB_SOURCE", "data/tickets.db"),
		Port:          port,
		JWTSecret:     getEnv("JWT_SECRET", "graviti_secret_key_2024"),
		JWTTTL:        time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:"+port),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@graviti.com"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
