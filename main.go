package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"baleafiya/api"
	"baleafiya/bot"
	"baleafiya/catalog"
	"baleafiya/config"
	"baleafiya/db"
	"baleafiya/services"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Check for migrate subcommand
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		runMigrate(cfg)
		return
	}

	cat, err := catalog.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store:", err)
		os.Exit(1)
	}
	defer db.Close()

	engine := services.NewCartEngine(store)

	srv := api.NewServer(cat)
	go func() {
		log.Printf("HTTP API on %s", cfg.HTTP.Addr)
		if err := http.ListenAndServe(cfg.HTTP.Addr, srv.Router); err != nil {
			log.Printf("http: %v", err)
		}
	}()

	if cfg.Telegram.Token == "" {
		fmt.Println("TOKEN not set, running API only.")
		select {}
	}

	b, err := bot.New(cfg, cat, engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bot:", err)
		os.Exit(1)
	}
	fmt.Println("Bot started.")
	b.Start()
}

// newStore picks the cart persistence backend from config. With no
// backend configured the carts live for the process lifetime only.
func newStore(cfg *config.Config) (services.CartStore, error) {
	switch cfg.Store {
	case "postgres":
		if err := db.Init(cfg.DB); err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		return services.NewPostgresCartStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return services.NewRedisCartStore(client), nil
	case "memory":
		return services.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
