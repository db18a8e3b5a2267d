package domain

import "slices"

// AnonymousFavoritesKey is the shared bucket used when no identity is present.
const AnonymousFavoritesKey = "favorites:global"

// favoritesKeyPrefix partitions per-identity favorites lists.
const favoritesKeyPrefix = "favorites:"

// FavoritesKey derives the storage key for an identity's favorites list.
// Identities with a non-empty email get their own bucket; everyone else
// shares the anonymous bucket. Malformed or absent session state upstream
// must resolve to a nil identity, which fails open to the anonymous key.
func FavoritesKey(identity *Identity) string {
	if identity != nil && identity.Email != "" {
		return favoritesKeyPrefix + identity.Email
	}
	return AnonymousFavoritesKey
}

// ToggleFavoriteID flips membership of id in the list.
// If absent it is appended at the end, preserving insertion order;
// if present all occurrences are removed. Returns the new list and
// whether id is now present.
func ToggleFavoriteID(ids []string, id string) ([]string, bool) {
	if slices.Contains(ids, id) {
		out := make([]string, 0, len(ids))
		for _, existing := range ids {
			if existing != id {
				out = append(out, existing)
			}
		}
		return out, false
	}

	out := make([]string, len(ids), len(ids)+1)
	copy(out, ids)
	return append(out, id), true
}
