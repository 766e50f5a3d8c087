// Package config loads startup configuration. Environment variables are the
// primary source; an optional YAML file (CASEFLOW_CONFIG) overlays them for
// deployments that prefer files. Read once in main, read-only thereafter.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string      `yaml:"addr"`
	PostgresURL   string      `yaml:"postgres_url"`
	Redis         RedisConfig `yaml:"redis"`
	KafkaBrokers  []string    `yaml:"kafka_brokers"`
	JWTSigningKey string      `yaml:"jwt_signing_key"`
	CaseAPIURL    string      `yaml:"case_api_url"`
	PersonAPIURL  string      `yaml:"person_api_url"`
	UserAPIURL    string      `yaml:"user_api_url"`
	Flags         Flags       `yaml:"flags"`
}

// Flags gates optional tasks and pages. Resolved once per process lifetime so
// navigation answers stay stable within a session.
type Flags struct {
	AttachDocumentsEnabled bool `yaml:"attach_documents_enabled"`
}

// RedisConfig configures the optional document read cache.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// FromEnv builds a Server config from environment variables so main stays
// lean. When CASEFLOW_CONFIG names a YAML file its values take precedence.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          envOr("CASEFLOW_ADDR", ":8080"),
		PostgresURL:   os.Getenv("CASEFLOW_POSTGRES_URL"),
		JWTSigningKey: envOr("CASEFLOW_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		CaseAPIURL:    os.Getenv("CASEFLOW_CASE_API_URL"),
		PersonAPIURL:  os.Getenv("CASEFLOW_PERSON_API_URL"),
		UserAPIURL:    os.Getenv("CASEFLOW_USER_API_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("CASEFLOW_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			CacheTTL:     5 * time.Minute,
		},
		Flags: Flags{
			AttachDocumentsEnabled: os.Getenv("CASEFLOW_ATTACH_DOCUMENTS_ENABLED") == "true",
		},
	}
	if brokers := os.Getenv("CASEFLOW_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	if path := os.Getenv("CASEFLOW_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
