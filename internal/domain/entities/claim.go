package entities

import "time"

// ClaimType is fixed when the claim is created.
type ClaimType string

const (
	ClaimTypeAuto     ClaimType = "AUTO"
	ClaimTypeHome     ClaimType = "HOME"
	ClaimTypeBusiness ClaimType = "BUSINESS"
)

// ClaimStatus represents the review lifecycle of a claim.
//
// Domain notes:
//   - Every claim starts as NEW.
//   - There is no transition graph: an admin may move any status to any other
//     status (including the same one). Each move is recorded in the activity log.
type ClaimStatus string

const (
	ClaimStatusNew      ClaimStatus = "NEW"
	ClaimStatusInReview ClaimStatus = "IN_REVIEW"
	ClaimStatusClosed   ClaimStatus = "CLOSED"
)

func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusNew, ClaimStatusInReview, ClaimStatusClosed:
		return true
	}
	return false
}

// Claim is the First Notice of Loss record.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id, sorted by created_at
//   - claim_number uniqueness is guarded by a separate claim_numbers table
//
// ClaimNumber, Type, UserID and CreatedAt never change after creation.
// InternalNote is an admin-only annotation and is hidden from the owner's view.
type Claim struct {
	ID          string      `json:"id"`
	ClaimNumber string      `json:"claim_number"`
	Type        ClaimType   `json:"type"`
	Status      ClaimStatus `json:"status"`

	PolicyholderName  string `json:"policyholder_name"`
	PolicyholderID    string `json:"policyholder_id"`
	PolicyholderEmail string `json:"policyholder_email"`
	PolicyholderPhone string `json:"policyholder_phone"`

	PolicyNumber string `json:"policy_number"`
	CoverageType string `json:"coverage_type"`

	IncidentDate   time.Time `json:"incident_date"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	DamageCategory string    `json:"damage_category"`

	UserID       string    `json:"user_id"`
	InternalNote string    `json:"internal_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClaimDetail is a claim together with its activity log, newest entry first.
type ClaimDetail struct {
	Claim    Claim
	Activity []ActivityLogEntry
}

// ClaimWithOwner backs the admin claims table.
type ClaimWithOwner struct {
	Claim
	OwnerName  string
	OwnerEmail string
}
