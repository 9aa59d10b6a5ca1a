package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	_ "github.com/mattn/go-sqlite3"

	"github.com/talentoplus/talentoplus/internal/api"
	"github.com/talentoplus/talentoplus/internal/assistant"
	"github.com/talentoplus/talentoplus/internal/auth"
	"github.com/talentoplus/talentoplus/internal/config"
	"github.com/talentoplus/talentoplus/internal/mailer"
	"github.com/talentoplus/talentoplus/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	db, err := sql.Open("sqlite3", cfg.DatabasePath+"?_foreign_keys=on")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if cfg.SeedOnStart {
		if err := store.Seed(store.NewSqliteStore(db)); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	ctx := context.Background()

	// Vertex AI interpretation is optional; the rule-based interpreter
	// answers everything on its own when no project is configured
	var gemini *assistant.GeminiClient
	if cfg.GeminiEnabled() {
		gemini, err = assistant.NewGeminiClient(ctx, cfg.GoogleCloudProject, cfg.GoogleCloudLocation)
		if err != nil {
			log.Printf("Gemini unavailable, using local interpreter: %v", err)
			gemini = nil
		}
	}

	var mail mailer.Mailer = mailer.NewLogMailer()
	if cfg.GmailCredentialsPath != "" {
		gm, err := mailer.NewGmailMailer(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath)
		if err != nil {
			log.Printf("Gmail unavailable, emails will be logged: %v", err)
		} else {
			mail = gm
		}
	}

	tokens := auth.NewManager(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTExpireMinutes)

	// Each request gets its own store, so staging sessions stay request-local
	stores := func() store.Store { return store.NewSqliteStore(db) }
	server := api.NewServer(stores, mail, gemini, tokens)

	fmt.Printf("Starting TalentoPlus on port %s...\n", cfg.HTTPPort)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  POST /api/auth/login - Authenticate and obtain a token\n")
	fmt.Printf("  POST /api/import - Upload an .xlsx employee spreadsheet\n")
	fmt.Printf("  POST /api/assistant - Ask a question about the employees\n")
	fmt.Printf("  GET /api/dashboard - Headcount statistics\n")

	if err := http.ListenAndServe(":"+cfg.HTTPPort, server.Router()); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
