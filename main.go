package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"statuswatch/adapters"
	"statuswatch/api"
	"statuswatch/config"
	"statuswatch/console"
	"statuswatch/fetch"
	"statuswatch/watcher"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	// Log to stderr so the incident stream on stdout stays clean
	log.SetOutput(os.Stderr)

	client := fetch.NewClient(envDuration("FETCH_TIMEOUT_SECONDS", config.DefaultFetchTimeout))

	registry := adapters.NewRegistry()
	for _, preset := range config.ProviderPresets() {
		var adapter adapters.Adapter
		switch {
		case preset.Structured != nil:
			adapter = adapters.NewStructuredAdapter(*preset.Structured, client)
		case preset.Feed != nil:
			adapter = adapters.NewFeedAdapter(*preset.Feed, client)
		default:
			log.Fatalf("provider %q has no adapter configuration", preset.Key)
		}
		// Registry misconfiguration is fatal at startup, never at runtime.
		if err := registry.Register(preset.Key, adapter); err != nil {
			log.Fatalf("failed to register provider: %v", err)
		}
	}

	cfg := watcher.Config{
		PollInterval: envDuration("POLL_INTERVAL_SECONDS", config.DefaultPollInterval),
		FetchLimit:   envInt("FETCH_LIMIT", config.DefaultFetchLimit),
		RecentWindow: envInt("RECENT_WINDOW", config.DefaultRecentWindow),
	}

	store := api.NewIncidentStore(envInt("STORE_LIMIT", config.DefaultStoreLimit))
	printer := console.NewPrinter(os.Stdout)
	w := watcher.New(registry, watcher.MultiSink{printer, store}, cfg)

	addr := ":" + getEnvOrDefault("PORT", config.DefaultAPIPort)
	router := api.NewRouter(w, store)
	go func() {
		log.Printf("Starting API server on %s", addr)
		log.Println("API endpoints available:")
		log.Println("  GET /api/health")
		log.Println("  GET /api/providers")
		log.Println("  GET /api/incidents")
		log.Println("  GET /metrics")
		if err := router.Run(addr); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	keys := make([]string, 0, len(registry.List()))
	for _, reg := range registry.List() {
		keys = append(keys, reg.Key)
	}
	printer.Banner(keys, cfg.PollInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("watcher error: %v", err)
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
		log.Printf("ignoring invalid %s=%q", key, os.Getenv(key))
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		log.Printf("ignoring invalid %s=%q", key, os.Getenv(key))
	}
	return defaultVal
}
