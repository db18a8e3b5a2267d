// Package main provides a tool to seed the catalog with the built-in
// dataset.
//
// Usage:
//
//	DB_PATH=~/MangaPortal/data/db go run ./cmd/seed
//	DB_PATH=~/MangaPortal/data/db go run ./cmd/seed --force  # Overwrite existing entries
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mangaportal/mangaportal-server/internal/catalog"
	"github.com/mangaportal/mangaportal-server/internal/store"
)

var force = flag.Bool("force", false, "Seed even when the catalog is not empty, overwriting by ID")

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/MangaPortal/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.New(dbPath, nil, store.NewNoopEmitter())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	var seeded int
	if *force {
		seeded, err = catalog.Seed(ctx, s)
	} else {
		seeded, err = catalog.SeedIfEmpty(ctx, s)
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if seeded == 0 {
		fmt.Println("Catalog already populated, nothing to do (use --force to overwrite)")
		return
	}
	fmt.Printf("Seeded %d catalog entries\n", seeded)
}
