package response

import (
	"time"

	"fnol_intake/internal/domain/entities"
)

const incidentDateLayout = "2006-01-02"

type ClaimResponse struct {
	ID                string    `json:"id"`
	ClaimNumber       string    `json:"claim_number"`
	Type              string    `json:"type"`
	Status            string    `json:"status"`
	PolicyholderName  string    `json:"policyholder_name"`
	PolicyholderID    string    `json:"policyholder_id"`
	PolicyholderEmail string    `json:"policyholder_email"`
	PolicyholderPhone string    `json:"policyholder_phone"`
	PolicyNumber      string    `json:"policy_number"`
	CoverageType      string    `json:"coverage_type"`
	IncidentDate      string    `json:"incident_date"`
	Location          string    `json:"location"`
	Description       string    `json:"description"`
	DamageCategory    string    `json:"damage_category"`
	UserID            string    `json:"user_id"`
	InternalNote      string    `json:"internal_note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ActivityResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

type ClaimDetailResponse struct {
	ClaimResponse
	Activity []ActivityResponse `json:"activity"`
}

type AdminClaimResponse struct {
	ClaimResponse
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

func FromClaim(c entities.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                c.ID,
		ClaimNumber:       c.ClaimNumber,
		Type:              string(c.Type),
		Status:            string(c.Status),
		PolicyholderName:  c.PolicyholderName,
		PolicyholderID:    c.PolicyholderID,
		PolicyholderEmail: c.PolicyholderEmail,
		PolicyholderPhone: c.PolicyholderPhone,
		PolicyNumber:      c.PolicyNumber,
		CoverageType:      c.CoverageType,
		IncidentDate:      c.IncidentDate.UTC().Format(incidentDateLayout),
		Location:          c.Location,
		Description:       c.Description,
		DamageCategory:    c.DamageCategory,
		UserID:            c.UserID,
		InternalNote:      c.InternalNote,
		CreatedAt:         c.CreatedAt,
	}
}

func FromClaims(claims []entities.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, FromClaim(c))
	}
	return out
}

func FromClaimDetail(d entities.ClaimDetail) ClaimDetailResponse {
	activity := make([]ActivityResponse, 0, len(d.Activity))
	for _, e := range d.Activity {
		activity = append(activity, ActivityResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return ClaimDetailResponse{ClaimResponse: FromClaim(d.Claim), Activity: activity}
}

func FromClaimsWithOwner(claims []entities.ClaimWithOwner) []AdminClaimResponse {
	out := make([]AdminClaimResponse, 0, len(claims))
	for _, c := range claims {
		out = append(out, AdminClaimResponse{
			ClaimResponse: FromClaim(c.Claim),
			OwnerName:     c.OwnerName,
			OwnerEmail:    c.OwnerEmail,
		})
	}
	return out
}
