package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the environment-backed application settings
type Config struct {
	Port                    string
	Env                     string
	PostgresConnStr         string
	MongoURI                string
	MongoDB                 string
	JWTSecret               string
	UploadsDir              string
	FirebaseCredentialsPath string
}

// Load reads a .env file when present, then the environment
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                    getEnv("PORT", "3900"),
		Env:                     getEnv("ENV", "development"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDB:                 getEnv("MONGO_DB", "redsocial"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		UploadsDir:              getEnv("UPLOADS_DIR", "./uploads"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
