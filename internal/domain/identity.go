// Package domain contains the core entities of the MangaPortal server.
package domain

import "strings"

// Identity is the logged-in user's email/name pair.
// A nil Identity means the caller is anonymous.
//
// Email is the uniqueness key and is immutable after login;
// Name is user-editable via the profile.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DeriveDisplayName builds a display name from an email address.
// It takes the local part and replaces the common separators
// ('.', '_', '-') with spaces: "jane.doe@x.io" becomes "jane doe".
func DeriveDisplayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		local = email
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '_', '-':
			return ' '
		}
		return r
	}, local)
}
