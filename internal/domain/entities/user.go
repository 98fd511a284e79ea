package entities

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User is a registered account.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (email-index): email
//
// InsuranceCompany is free text typed by the user, stored uppercased. It only
// drives certificate branding.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	InsuranceCompany string    `json:"insurance_company,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
