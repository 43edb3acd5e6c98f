package dto

import (
	"time"

	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      *string   `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User    UserResponse  `json:"user"`
	Reef    *ReefResponse `json:"reef,omitempty"`
	Partner *UserResponse `json:"partner,omitempty"`
}

type DevLoginRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"max=255"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToProfileResponse(p *service.Profile) ProfileResponse {
	resp := ProfileResponse{User: ToUserResponse(p.User)}
	if p.Reef != nil {
		reef := ToReefResponse(p.Reef)
		resp.Reef = &reef
	}
	if p.Partner != nil {
		partner := ToUserResponse(p.Partner)
		resp.Partner = &partner
	}
	return resp
}

func ToSessionResponse(user *model.User, session *model.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      ToUserResponse(user),
	}
}
