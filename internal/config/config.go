package config

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds server configuration loaded from the environment.
type Config struct {
	Addr             string
	DBPath           string
	JWTSecret        string
	LogLevel         string
	ClientOrigin     string
	StorageBackend   string // "local" or "s3"
	LocalStoragePath string
	S3Region         string
	S3Bucket         string
	Debug            bool
}

// AppConfig is the global server configuration.
var AppConfig Config

// Init loads configuration from .env (if present) and the environment.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	AppConfig = Config{
		Addr:             getEnv("ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "./blogcraft.db"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		ClientOrigin:     getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		StorageBackend:   getEnv("STORAGE_BACKEND", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./uploads"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		Debug:            getEnvAsBool("DEBUG", false),
	}

	if AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	if AppConfig.StorageBackend == "s3" && AppConfig.S3Bucket == "" {
		log.Fatal("S3_BUCKET must be set when STORAGE_BACKEND=s3")
	}

	if AppConfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return defaultVal
}
