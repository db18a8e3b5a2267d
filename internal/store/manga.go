package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mangaportal/mangaportal-server/internal/domain"
)

// Key prefix for manga storage.
const mangaPrefix = "manga:"

// SaveManga creates or replaces a catalog entry and refreshes the
// search index for it.
func (s *Store) SaveManga(ctx context.Context, manga *domain.Manga) error {
	key := []byte(mangaPrefix + manga.ID)

	now := time.Now()
	if manga.CreatedAt.IsZero() {
		manga.CreatedAt = now
	}
	manga.UpdatedAt = now

	if err := s.set(key, manga); err != nil {
		return fmt.Errorf("save manga: %w", err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.IndexManga(ctx, manga); err != nil && s.logger != nil {
			s.logger.Warn("failed to index manga", "id", manga.ID, "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Debug("manga saved", "id", manga.ID, "title_en", manga.TitleEn)
	}
	return nil
}

// GetManga retrieves a catalog entry by ID.
func (s *Store) GetManga(_ context.Context, id string) (*domain.Manga, error) {
	key := []byte(mangaPrefix + id)

	var manga domain.Manga
	if err := s.get(key, &manga); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrMangaNotFound
		}
		return nil, fmt.Errorf("get manga: %w", err)
	}

	return &manga, nil
}

// ListManga returns every catalog entry, sorted by ID for a stable
// ordering. Entries that fail to parse are skipped.
func (s *Store) ListManga(_ context.Context) ([]*domain.Manga, error) {
	var mangas []*domain.Manga

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mangaPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if err := item.Value(func(val []byte) error {
				var manga domain.Manga
				if err := json.Unmarshal(val, &manga); err != nil {
					if s.logger != nil {
						s.logger.Warn("skipping unreadable manga entry",
							"key", string(item.Key()), "error", err)
					}
					return nil
				}
				mangas = append(mangas, &manga)
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list manga: %w", err)
	}

	sort.Slice(mangas, func(i, j int) bool { return mangas[i].ID < mangas[j].ID })
	return mangas, nil
}

// GetMangaByIDs resolves a list of IDs, preserving input order and
// skipping IDs that no longer exist in the catalog.
func (s *Store) GetMangaByIDs(ctx context.Context, ids []string) ([]*domain.Manga, error) {
	mangas := make([]*domain.Manga, 0, len(ids))
	for _, id := range ids {
		manga, err := s.GetManga(ctx, id)
		if err != nil {
			if errors.Is(err, ErrMangaNotFound) {
				continue
			}
			return nil, err
		}
		mangas = append(mangas, manga)
	}
	return mangas, nil
}

// DeleteManga removes a catalog entry and its search index document.
func (s *Store) DeleteManga(ctx context.Context, id string) error {
	key := []byte(mangaPrefix + id)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check manga exists: %w", err)
	}
	if !exists {
		return ErrMangaNotFound
	}

	if err := s.delete(key); err != nil {
		return fmt.Errorf("delete manga: %w", err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteManga(ctx, id); err != nil && s.logger != nil {
			s.logger.Warn("failed to remove manga from index", "id", id, "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("manga deleted", "id", id)
	}
	return nil
}

// CountManga returns the number of catalog entries.
func (s *Store) CountManga(_ context.Context) (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(mangaPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count manga: %w", err)
	}
	return count, nil
}
