package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ayusman/mudra/internal/catalog"
	"github.com/ayusman/mudra/internal/player"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func main() {
	fmt.Println("Mudra - Sign Language Avatar Engine")

	// Optional .env file for local development; real environment wins.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	dbPath := os.Getenv("MUDRA_DB")
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbDir := filepath.Join(homeDir, ".mudra")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "mudra.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// A fresh database starts with the builtin sign set.
	if err := st.Actions().Seed(catalog.Builtin()); err != nil {
		log.Fatalf("Failed to seed sign actions: %v", err)
	}

	actions, err := st.Actions().List()
	if err != nil {
		log.Fatalf("Failed to load sign actions: %v", err)
	}
	cat := catalog.New(actions)
	log.Printf("Loaded %d sign actions from database", cat.Len())

	// The controller is constructed here and handed to the server, which
	// owns the render clock; there is no process-wide instance.
	ctrl := player.New()
	defer ctrl.Dispose()

	webDir := os.Getenv("MUDRA_WEB_DIR")
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Catalog:   cat,
		Player:    ctrl,
	})
	defer srv.Close()

	addr := os.Getenv("MUDRA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	fmt.Printf("Starting server on %s\n", addr)
	if err := srv.ListenAndServe(addr); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
