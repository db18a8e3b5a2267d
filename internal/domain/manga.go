package domain

import (
	"slices"
	"time"
)

// MangaStatus is the publication status of a title.
// Values are the Arabic strings the catalog has always used.
type MangaStatus string

// Publication statuses.
const (
	StatusOngoing   MangaStatus = "مستمر"
	StatusCompleted MangaStatus = "مكتمل"
	StatusHiatus    MangaStatus = "متوقف"
)

// MangaType distinguishes the origin format of a title.
type MangaType string

// Title types.
const (
	TypeManga  MangaType = "manga"
	TypeManhwa MangaType = "manhwa"
	TypeManhua MangaType = "manhua"
)

// Chapter is a single chapter of a manga.
type Chapter struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Pages  int    `json:"pages"`
}

// Manga is a catalog entry.
//
// Chapters are kept newest-first: index 0 is the most recent chapter.
// The reader's "next chapter" is therefore the lower-index neighbor.
type Manga struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	TitleEn     string      `json:"titleEn"`
	Author      string      `json:"author"`
	Status      MangaStatus `json:"status"`
	Genres      []string    `json:"genres"`
	Rating      float64     `json:"rating"`
	Description string      `json:"description"`
	Cover       string      `json:"cover"`
	Type        MangaType   `json:"type"`
	Chapters    []Chapter   `json:"chapters"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LatestChapter returns the most recent chapter, or nil if there are none.
func (m *Manga) LatestChapter() *Chapter {
	if len(m.Chapters) == 0 {
		return nil
	}
	return &m.Chapters[0]
}

// ChapterByNumber finds a chapter by its number, or nil if absent.
func (m *Manga) ChapterByNumber(number int) *Chapter {
	for i := range m.Chapters {
		if m.Chapters[i].Number == number {
			return &m.Chapters[i]
		}
	}
	return nil
}

// ChapterNeighbors returns the chapters adjacent to number in reading
// order. Next is the newer chapter, previous the older one; either may
// be nil at the ends of the list or when number is unknown.
func (m *Manga) ChapterNeighbors(number int) (next, previous *Chapter) {
	idx := slices.IndexFunc(m.Chapters, func(c Chapter) bool {
		return c.Number == number
	})
	if idx < 0 {
		return nil, nil
	}
	if idx > 0 {
		next = &m.Chapters[idx-1]
	}
	if idx < len(m.Chapters)-1 {
		previous = &m.Chapters[idx+1]
	}
	return next, previous
}

// HasGenre reports whether the manga carries the given genre.
func (m *Manga) HasGenre(genre string) bool {
	return slices.Contains(m.Genres, genre)
}
