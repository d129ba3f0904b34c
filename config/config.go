// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values; values still
// missing after that are resolved from AWS SSM Parameter Store.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// PostgreSQL – either set DatabaseURL directly, or the individual fields.
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Object store holding the open-data JSON documents.
	S3Bucket  string
	S3Prefix  string
	AWSRegion string

	// Worker pool width for the events ingestion job.
	IngestWorkers int

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present), then from environment
// variables, then falls back to SSM Parameter Store for DATABASE_URL and
// S3_BUCKET_NAME. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("DB_USER", "padraic")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "football")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("S3_PREFIX", "open-data/data/")
	v.SetDefault("AWS_REGION", "us-west-1")
	v.SetDefault("INGEST_WORKERS", 8)
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "footystats.app,www.footystats.app")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		DatabaseURL:   v.GetString("DATABASE_URL"),
		DBUser:        v.GetString("DB_USER"),
		DBPass:        v.GetString("DB_PASS"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSLMODE"),
		S3Bucket:      v.GetString("S3_BUCKET_NAME"),
		S3Prefix:      v.GetString("S3_PREFIX"),
		AWSRegion:     v.GetString("AWS_REGION"),
		IngestWorkers: v.GetInt("INGEST_WORKERS"),
		Debug:         v.GetBool("DEBUG"),
		Port:          v.GetString("PORT"),
		TLSDomains:    splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.resolveFromSSM()
	cfg.validate()
	return cfg
}

// PostgresDSN returns the full PostgreSQL connection string.
// DATABASE_URL takes precedence over individual fields.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// resolveFromSSM fills DATABASE_URL and S3_BUCKET_NAME from Parameter Store
// when the environment left them unset. Env always wins over SSM.
func (c *Config) resolveFromSSM() {
	if (c.DatabaseURL != "" || c.DBPass != "") && c.S3Bucket != "" {
		return
	}
	ps, err := newParamStore(c.AWSRegion)
	if err != nil {
		log.Printf("config: ssm unavailable: %v", err)
		return
	}
	if c.DatabaseURL == "" && c.DBPass == "" {
		if v, err := ps.get("/football/DATABASE_URL"); err != nil {
			log.Printf("config: ssm /football/DATABASE_URL: %v", err)
		} else {
			c.DatabaseURL = v
		}
	}
	if c.S3Bucket == "" {
		if v, err := ps.get("/football/S3_BUCKET_NAME"); err != nil {
			log.Printf("config: ssm /football/S3_BUCKET_NAME: %v", err)
		} else {
			c.S3Bucket = v
		}
	}
}

func (c *Config) validate() {
	if c.DatabaseURL == "" && c.DBPass == "" {
		log.Fatal("config: DATABASE_URL or DB_PASS must be set")
	}
	if c.IngestWorkers < 1 {
		log.Fatal("config: INGEST_WORKERS must be at least 1")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (EC2 uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
