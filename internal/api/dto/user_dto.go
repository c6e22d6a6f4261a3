package dto

import (
	"time"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	GoogleSub     string `json:"google_sub"`
	PictureURL    string `json:"picture_url"`
	FullName      string `json:"full_name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	EmailVerified bool   `json:"email_verified"`
	Locale        string `json:"locale"`
	HostedDomain  string `json:"hosted_domain"`
	Admin         bool   `json:"admin"`
	Professor     bool   `json:"professor"`
}

// CurrentUserResponse describes the caller.
type CurrentUserResponse struct {
	User  UserResponse  `json:"user"`
	Roles []domain.Role `json:"roles"`
}

// AuthResponse standard response for token issuance.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		GoogleSub:     u.GoogleSub,
		PictureURL:    u.PictureURL,
		FullName:      u.FullName,
		GivenName:     u.GivenName,
		FamilyName:    u.FamilyName,
		EmailVerified: u.EmailVerified,
		Locale:        u.Locale,
		HostedDomain:  u.HostedDomain,
		Admin:         u.Admin,
		Professor:     u.Professor,
	}
}

// NewUserResponses maps a list.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
