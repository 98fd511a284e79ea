package bootstrap

import (
	"context"
	"fmt"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
)

// Demo accounts created by Seed.
const (
	DemoAdminEmail  = "admin@fnolpro.com"
	DemoClientEmail = "client@example.com"
)

// SeedReport describes what Seed changed.
type SeedReport struct {
	Admin         entities.User
	Client        entities.User
	AdminCreated  bool
	ClientCreated bool
	SampleClaim   entities.Claim
}

// Seed creates the demo admin and client accounts and, when the client has no
// claims yet, one sample AUTO claim. Running it twice changes nothing.
func (c *Container) Seed(ctx context.Context) (SeedReport, error) {
	var (
		r   SeedReport
		err error
	)

	r.Admin, r.AdminCreated, err = c.Auth.EnsureUser(ctx, usecase.RegisterInput{
		Name:     "FNOL Admin",
		Email:    DemoAdminEmail,
		Password: "admin123",
	}, entities.RoleAdmin, "")
	if err != nil {
		return r, fmt.Errorf("seed admin: %w", err)
	}

	r.Client, r.ClientCreated, err = c.Auth.EnsureUser(ctx, usecase.RegisterInput{
		Name:     "Demo Client",
		Email:    DemoClientEmail,
		Password: "client123",
	}, entities.RoleClient, "MAPFRE")
	if err != nil {
		return r, fmt.Errorf("seed client: %w", err)
	}

	client := entities.Identity{UserID: r.Client.ID, Name: r.Client.Name, Email: r.Client.Email, Role: r.Client.Role}
	existing, err := c.Claims.ListForUser(ctx, client)
	if err != nil {
		return r, fmt.Errorf("seed claim: %w", err)
	}
	if len(existing) > 0 {
		return r, nil
	}

	r.SampleClaim, err = c.Claims.Create(ctx, client, usecase.ClaimInput{
		Type:              string(entities.ClaimTypeAuto),
		PolicyholderName:  r.Client.Name,
		PolicyholderID:    "X1234567Z",
		PolicyholderEmail: r.Client.Email,
		PolicyholderPhone: "+34 600 123 456",
		PolicyNumber:      "POL-AUTO-0001",
		CoverageType:      "Comprehensive",
		IncidentDate:      "2024-05-01",
		Location:          "Calle Mayor 1, Madrid",
		Description:       "Rear-ended while stopped at a traffic light.",
		DamageCategory:    "Collision",
	})
	if err != nil {
		return r, fmt.Errorf("seed claim: %w", err)
	}
	c.Log.Infof("seeded sample claim claim_number=%s", r.SampleClaim.ClaimNumber)
	return r, nil
}
