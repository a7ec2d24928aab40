package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr           string
	RedisAddr      string
	CatalogPath    string
	MembersPath    string
	MatchThreshold int
	OTLPEndpoint   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	threshold, _ := strconv.Atoi(os.Getenv("MATCH_THRESHOLD"))
	if threshold == 0 {
		threshold = 75
	}

	return &Config{
		Addr:           addr,
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		MembersPath:    os.Getenv("MEMBERS_PATH"),
		MatchThreshold: threshold,
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}
