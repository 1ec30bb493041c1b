package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Postgres Postgres
	Scraper  Scraper
	SMTP     SMTP
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}

// LoadScraper loads only the scraper section. Used by the selector-checking
// CLI, which needs no database.
func LoadScraper() (Scraper, error) {
	_ = godotenv.Load()

	var config Scraper

	if err := env.Parse(&config); err != nil {
		return Scraper{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Scraper{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}
