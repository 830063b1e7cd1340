package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration for the registry service.
type Server struct {
	Addr         string
	MetricsAddr  string
	PostgresURL  string
	RedisURL     string
	KafkaBrokers []string
	AuditTopic   string
	ForestTTL    time.Duration
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Empty PostgresURL/RedisURL/KafkaBrokers mean the in-memory store, no
// cache, and log-only audit respectively; useful for development.
func FromEnv() Server {
	cfg := Server{
		Addr:        envOr("WARISHD_ADDR", ":8080"),
		MetricsAddr: envOr("WARISHD_METRICS_ADDR", ":9090"),
		PostgresURL: os.Getenv("WARISHD_POSTGRES_URL"),
		RedisURL:    os.Getenv("WARISHD_REDIS_URL"),
		AuditTopic:  envOr("WARISHD_AUDIT_TOPIC", "warishd.audit"),
		ForestTTL:   5 * time.Minute,
	}
	if brokers := os.Getenv("WARISHD_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	if raw := os.Getenv("WARISHD_FOREST_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			cfg.ForestTTL = ttl
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
