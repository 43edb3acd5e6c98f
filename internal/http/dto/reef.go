package dto

import (
	"time"

	"github.com/alex28786/the-reef/internal/model"
)

type CreateReefRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type JoinReefRequest struct {
	Token string `json:"token" binding:"required"`
}

type ReefResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type InviteResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	InviteURL string    `json:"invite_url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ValidateInviteResponse struct {
	Email     string    `json:"email"`
	ReefName  string    `json:"reef_name"`
	ExpiresAt time.Time `json:"expires_at"`
	Valid     bool      `json:"valid"`
}

func ToReefResponse(r *model.Reef) ReefResponse {
	return ReefResponse{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

func ToInviteResponse(inv *model.ReefInvitation, inviteURL string) InviteResponse {
	return InviteResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		InviteURL: inviteURL,
		Token:     inv.Token,
		ExpiresAt: inv.ExpiresAt,
	}
}
