// The fanapen CLI runs data-layer maintenance against the configured
// storage backend:
//
//	fanapen migrate   apply schema definitions/migrations
//	fanapen ping      check the backend is reachable
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/MasFana/fanapen/internal/fanapen/app"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	cmd := "migrate"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	switch cmd {
	case "migrate":
		if err := application.Migrate(ctx); err != nil {
			log.Fatalf("migrate failed: %v", err)
		}
	case "ping":
		if err := application.Ping(ctx); err != nil {
			log.Fatalf("ping failed: %v", err)
		}
		fmt.Println("ok")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
}
