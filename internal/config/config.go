package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName                string
	AppPort                string
	MongoURI               string
	MongoDBName            string
	AllowedOrigins         []string
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

// Load reads configuration from the environment, with .env as an optional
// overlay. Missing required variables are fatal.
func Load(log *slog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}

	cfg := &Config{
		AppName:                os.Getenv("APP_NAME"),
		AppPort:                os.Getenv("APP_PORT"),
		MongoURI:               os.Getenv("MONGO_URI"),
		MongoDBName:            os.Getenv("MONGO_DB_NAME"),
		AllowedOrigins:         splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
		RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
	}

	if cfg.AppName == "" {
		cfg.AppName = "product-catalog"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "3000"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	// Optional but recommended
	if cfg.RemoteTraceRpcURI == "" {
		log.Warn("Missing REMOTE_TRACE_RPC_URI will export spans to stdout")
	}
	if cfg.RemoteProfilingHttpURI == "" {
		log.Warn("Missing REMOTE_PROFILING_HTTP_URI will skip profiling")
	}

	var missing []string
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if cfg.MongoDBName == "" {
		missing = append(missing, "MONGO_DB_NAME")
	}

	if len(missing) > 0 {
		log.Error("Missing required environment variables", slog.Any("missing", missing))
		os.Exit(1)
	}

	log.Info("Configuration loaded successfully",
		slog.String("app_name", cfg.AppName),
		slog.String("app_port", cfg.AppPort),
		slog.String("mongo_db_name", cfg.MongoDBName),
		slog.Any("allowed_origins", cfg.AllowedOrigins),
	)

	return cfg
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
