package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	WorkOSID  *string   `json:"-"`
	ReefID    *int64    `json:"reef_id,omitempty"`
	Role      *string   `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InReef reports whether the user belongs to the given reef.
func (u *User) InReef(reefID int64) bool {
	return u.ReefID != nil && *u.ReefID == reefID
}
