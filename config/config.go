package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	CORSOrigin    string
	TickRate      int
	SnapshotEvery int
}

// Load reads .env if there is one and then builds the config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded:", err)
	}
	return LoadConfig()
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("PORT", "5000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "lanerunner"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "dbname"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		TickRate:      getEnvInt("TICK_RATE", 60),
		SnapshotEvery: getEnvInt("SNAPSHOT_EVERY", 3),
	}
}

// getEnv reads an environment variable and returns its value or a default value
func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = defaultValue
		log.Printf("Environment variable %s not set, using default value: %s", key, defaultValue)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, strconv.Itoa(defaultValue))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Environment variable %s=%q is not a positive integer, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
