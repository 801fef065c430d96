package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
}

func Load() *Config {
	// .env es opcional, pensado para desarrollo local
	if err := godotenv.Load(); err == nil {
		log.Println("Variables cargadas desde .env")
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=fabrica port=5432 sslmode=disable"),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=fabrica port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, definí tu propia conexión para producción.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
