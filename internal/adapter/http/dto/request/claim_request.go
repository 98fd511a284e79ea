package request

import (
	"strings"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase"
)

// CreateClaimRequest is the FNOL intake form. Field rules are enforced by the
// use case so every problem is reported at once, keyed by these JSON names.
type CreateClaimRequest struct {
	Type              string `json:"type" example:"AUTO"`
	PolicyholderName  string `json:"policyholder_name" example:"Jane Roe"`
	PolicyholderID    string `json:"policyholder_id" example:"X1234567"`
	PolicyholderEmail string `json:"policyholder_email" example:"jane@example.com"`
	PolicyholderPhone string `json:"policyholder_phone" example:"+34 600 000 000"`
	PolicyNumber      string `json:"policy_number" example:"POL-2024-001"`
	CoverageType      string `json:"coverage_type" example:"Comprehensive"`
	IncidentDate      string `json:"incident_date" example:"2024-05-01"`
	Location          string `json:"location" example:"Calle Mayor 1, Madrid"`
	Description       string `json:"description" example:"Rear-ended at a traffic light"`
	DamageCategory    string `json:"damage_category" example:"Collision"`
}

func (r CreateClaimRequest) ToInput() usecase.ClaimInput {
	return usecase.ClaimInput{
		Type:              strings.ToUpper(strings.TrimSpace(r.Type)),
		PolicyholderName:  strings.TrimSpace(r.PolicyholderName),
		PolicyholderID:    strings.TrimSpace(r.PolicyholderID),
		PolicyholderEmail: strings.TrimSpace(r.PolicyholderEmail),
		PolicyholderPhone: strings.TrimSpace(r.PolicyholderPhone),
		PolicyNumber:      strings.TrimSpace(r.PolicyNumber),
		CoverageType:      strings.TrimSpace(r.CoverageType),
		IncidentDate:      strings.TrimSpace(r.IncidentDate),
		Location:          strings.TrimSpace(r.Location),
		Description:       strings.TrimSpace(r.Description),
		DamageCategory:    strings.TrimSpace(r.DamageCategory),
	}
}

type UpdateClaimStatusRequest struct {
	Status       string  `json:"status" binding:"required" example:"IN_REVIEW"`
	InternalNote *string `json:"internal_note" example:"Waiting for photos"`
}

func (r UpdateClaimStatusRequest) ResolveStatus() entities.ClaimStatus {
	return entities.ClaimStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
}
