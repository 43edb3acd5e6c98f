package model

import "time"

// MaxReefMembers is the size of a reef: the two partners.
const MaxReefMembers = 2

// Reef is the shared group two partners belong to.
type Reef struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
)

type ReefInvitation struct {
	ID         int64            `json:"id"`
	ReefID     int64            `json:"reef_id"`
	Email      string           `json:"email"`
	Token      string           `json:"token"`
	Status     InvitationStatus `json:"status"`
	InvitedBy  int64            `json:"invited_by"`
	AcceptedBy *int64           `json:"accepted_by,omitempty"`
	ExpiresAt  time.Time        `json:"expires_at"`
	CreatedAt  time.Time        `json:"created_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`
}

func (i *ReefInvitation) IsValid() bool {
	return i.Status == InvitationStatusPending && time.Now().Before(i.ExpiresAt)
}
