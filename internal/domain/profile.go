package domain

import "time"

// ProfileImage is a stored avatar image for an identity. Data holds a
// data URI so clients can render it without a second request.
type ProfileImage struct {
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `json:"email"`
	Data      string    `json:"data"`
	BlurHash  string    `json:"blur_hash,omitempty"`
}

// Profile is the aggregate view returned to clients: identity fields
// plus presentation helpers derived from them.
type Profile struct {
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	AvatarColor string `json:"avatar_color"`
	Image       string `json:"image,omitempty"`
	ImageBlur   string `json:"image_blur,omitempty"`
}
