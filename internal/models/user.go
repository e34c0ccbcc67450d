package models

import "time"

type User struct {
	ID        string    `json:"id" example:"6f1c2d0e-8b8e-4a57-9a43-0c1f3e6b7a10"` // User ID
	Name      string    `json:"name" example:"Sarah Johnson"`                      // Display name
	Email     string    `json:"email" example:"sarah@techwave.io"`                 // Login email
	Role      string    `json:"role" example:"entrepreneur"`                       // entrepreneur or investor
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredUser is the persisted form of User; it keeps the password hash that
// User hides from JSON responses.
type StoredUser struct {
	User
	PasswordHash string `json:"passwordHash"`
}
