package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr            string
	DatabaseURL     string
	JWTSecret       string
	RefreshSecret   string
	ProvincesAPIURL string
}

// Load reads configuration from environment variables.
func Load() Config {
	cfg := Config{
		Addr:            os.Getenv("ADDR"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RefreshSecret:   os.Getenv("REFRESH_TOKEN_SECRET"),
		ProvincesAPIURL: os.Getenv("PROVINCES_API_URL"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.ProvincesAPIURL == "" {
		cfg.ProvincesAPIURL = "https://provinces.open-api.vn/api"
	}
	return cfg
}
