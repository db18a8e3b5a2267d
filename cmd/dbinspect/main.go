// Package main provides a read-only inspection tool for the MangaPortal
// database: catalog counts, favorites lists, and active sessions.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/MangaPortal/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	if err := db.View(func(txn *badger.Txn) error {
		inspectCatalog(txn)
		inspectFavorites(txn)
		inspectSessions(txn)
		return nil
	}); err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}
}

func inspectCatalog(txn *badger.Txn) {
	count := 0
	totalChapters := 0

	forPrefix(txn, "manga:", func(key string, val []byte) {
		var manga domain.Manga
		if err := json.Unmarshal(val, &manga); err != nil {
			log.Printf("Error reading %s: %v", key, err)
			return
		}

		count++
		totalChapters += len(manga.Chapters)

		if count <= 3 {
			latest := 0
			if ch := manga.LatestChapter(); ch != nil {
				latest = ch.Number
			}
			fmt.Printf("Manga: %s (%s)\n", manga.TitleEn, manga.ID)
			fmt.Printf("  Status: %s  Type: %s  Rating: %.1f\n", manga.Status, manga.Type, manga.Rating)
			fmt.Printf("  Chapters: %d (latest %d)\n", len(manga.Chapters), latest)
			fmt.Println()
		}
	})

	fmt.Printf("Catalog entries: %d (total chapters: %d)\n", count, totalChapters)
	fmt.Println()
}

func inspectFavorites(txn *badger.Txn) {
	lists := 0

	forPrefix(txn, "favorites:", func(key string, val []byte) {
		var ids []string
		if err := json.Unmarshal(val, &ids); err != nil {
			fmt.Printf("Favorites %s: UNPARSEABLE (%v)\n", key, err)
			return
		}

		lists++
		fmt.Printf("Favorites %s: %d titles %v\n", key, len(ids), ids)
	})

	fmt.Printf("Favorites lists: %d\n", lists)
	fmt.Println()
}

func inspectSessions(txn *badger.Txn) {
	active := 0
	expired := 0

	forPrefix(txn, "session:", func(key string, val []byte) {
		var session domain.Session
		if err := json.Unmarshal(val, &session); err != nil {
			fmt.Printf("Session %s: UNPARSEABLE (%v)\n", key, err)
			return
		}

		if session.IsExpired() {
			expired++
			return
		}
		active++
		fmt.Printf("Session %s: %s, expires %s\n",
			session.ID, session.Email, session.ExpiresAt.Format(time.RFC3339))
	})

	fmt.Printf("Sessions: %d active, %d expired\n", active, expired)
}

// forPrefix iterates the values under one key prefix.
func forPrefix(txn *badger.Txn, prefix string, fn func(key string, val []byte)) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		item := it.Item()
		key := string(item.Key())
		if err := item.Value(func(val []byte) error {
			fn(key, append([]byte(nil), val...))
			return nil
		}); err != nil {
			log.Printf("Error reading %s: %v", key, err)
		}
	}
}
