// config/config.go
package config

import (
	"log"
	"os"
	"time"
)

// Config carries everything read from the environment at startup. It is
// built once in main and handed to the components that need it.
type Config struct {
	Port            string
	MongoURI        string
	DBName          string
	JWTKey          []byte
	JWTExpiration   time.Duration
	StripeSecretKey string
	ClientURL       string
}

func Load() Config {
	cfg := Config{
		Port:            os.Getenv("PORT"),
		MongoURI:        os.Getenv("MONGO_URI"),
		DBName:          os.Getenv("DB_NAME"),
		JWTKey:          []byte(os.Getenv("JWT_SECRET")),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		ClientURL:       os.Getenv("CLIENT_URL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.DBName == "" {
		cfg.DBName = "assetVerse"
	}
	if len(cfg.JWTKey) == 0 {
		log.Println("WARNING: JWT_SECRET not set, using insecure default")
		cfg.JWTKey = []byte("secret")
	}
	if cfg.ClientURL == "" {
		cfg.ClientURL = "http://localhost:5173"
	}

	expireStr := os.Getenv("JWT_EXPIRE")
	dur := 24 * time.Hour
	if expireStr != "" {
		if expireStr == "7d" {
			dur = 7 * 24 * time.Hour
		} else {
			var err error
			dur, err = time.ParseDuration(expireStr)
			if err != nil {
				log.Printf("Invalid JWT_EXPIRE: %s, using 24h", expireStr)
				dur = 24 * time.Hour
			}
		}
	}
	cfg.JWTExpiration = dur

	return cfg
}
