package response

import (
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
)

type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	InsuranceCompany string    `json:"insurance_company,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		InsuranceCompany: u.InsuranceCompany,
		CreatedAt:        u.CreatedAt,
	}
}

func FromSession(s usecase.Session) LoginResponse {
	return LoginResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: FromUser(s.User)}
}
