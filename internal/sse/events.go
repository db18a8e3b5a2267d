// Package sse implements Server-Sent Events for pushing catalog and
// favorites changes to connected clients.
package sse

import (
	"time"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventConnected confirms a newly established stream.
	EventConnected EventType = "connected"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"

	// EventFavoritesChanged signals that a favorites list was written.
	// Carries no list snapshot: clients re-query the favorites endpoint
	// so rapid successive writes can never deliver stale state.
	EventFavoritesChanged EventType = "favorites.changed"

	// EventCatalogUpdated signals that catalog entries were added or replaced.
	EventCatalogUpdated EventType = "catalog.updated"

	// EventProfileUpdated signals that the identity's profile changed.
	EventProfileUpdated EventType = "profile.updated"
)

// Event is the envelope broadcast to clients.
//
// FavoritesKey scopes delivery: when set, only clients whose identity
// derives the same favorites key receive the event. It is never sent
// over the wire.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
	Type      EventType `json:"type"`

	FavoritesKey string `json:"-"`
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
	}
}

// NewFavoritesChangedEvent creates a favorites change notification
// scoped to the given derived key.
func NewFavoritesChangedEvent(favoritesKey string) Event {
	return Event{
		Type:         EventFavoritesChanged,
		Timestamp:    time.Now(),
		FavoritesKey: favoritesKey,
		Data: map[string]string{
			"key": favoritesKey,
		},
	}
}

// NewCatalogUpdatedEvent creates a catalog update notification.
func NewCatalogUpdatedEvent(count int) Event {
	return Event{
		Type:      EventCatalogUpdated,
		Timestamp: time.Now(),
		Data: map[string]int{
			"count": count,
		},
	}
}

// NewProfileUpdatedEvent creates a profile change notification scoped
// to the identity's favorites key.
func NewProfileUpdatedEvent(favoritesKey string) Event {
	return Event{
		Type:         EventProfileUpdated,
		Timestamp:    time.Now(),
		FavoritesKey: favoritesKey,
	}
}
