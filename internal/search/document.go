// Package search provides full-text search over the manga catalog
// using Bleve, with fuzzy matching and genre/type/status filtering.
package search

import (
	"github.com/mangaportal/mangaportal-server/internal/domain"
)

// Document is the flattened catalog entry stored in the Bleve index.
//
// Titles are bilingual: the Arabic title and description are analyzed
// with the Arabic analyzer while the English title and author use the
// English one, so a query in either language finds the entry.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	TitleEn     string   `json:"title_en"`
	Author      string   `json:"author"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`

	Rating       float64 `json:"rating"`
	ChapterCount int     `json:"chapter_count"`

	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// NewDocument flattens a catalog entry for indexing.
func NewDocument(manga *domain.Manga) *Document {
	return &Document{
		ID:           manga.ID,
		Title:        manga.Title,
		TitleEn:      manga.TitleEn,
		Author:       manga.Author,
		Description:  manga.Description,
		Genres:       manga.Genres,
		Type:         string(manga.Type),
		Status:       string(manga.Status),
		Rating:       manga.Rating,
		ChapterCount: len(manga.Chapters),
		CreatedAt:    manga.CreatedAt.UnixMilli(),
		UpdatedAt:    manga.UpdatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"title_en":   d.TitleEn,
		"type":       d.Type,
		"status":     d.Status,
		"rating":     d.Rating,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Author != "" {
		m["author"] = d.Author
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if d.ChapterCount > 0 {
		m["chapter_count"] = d.ChapterCount
	}

	return m
}
