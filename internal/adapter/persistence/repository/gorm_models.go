package repository

import (
	"time"

	"fnol_intake/internal/domain/entities"

	"gorm.io/gorm"
)

// SQL schema for STORE_DRIVER=postgres. The unique indexes back the claim
// number and email guarantees; the connection must be opened with
// gorm.Config{TranslateError: true} so violations surface as
// gorm.ErrDuplicatedKey.

type claimModel struct {
	ID                string    `gorm:"primaryKey;size:36"`
	ClaimNumber       string    `gorm:"size:16;not null;uniqueIndex"`
	Type              string    `gorm:"size:16;not null"`
	Status            string    `gorm:"size:16;not null"`
	PolicyholderName  string    `gorm:"not null"`
	PolicyholderID    string    `gorm:"not null"`
	PolicyholderEmail string    `gorm:"not null"`
	PolicyholderPhone string    `gorm:"not null"`
	PolicyNumber      string    `gorm:"not null"`
	CoverageType      string    `gorm:"not null"`
	IncidentDate      time.Time `gorm:"not null"`
	Location          string    `gorm:"not null"`
	Description       string    `gorm:"type:text;not null"`
	DamageCategory    string    `gorm:"not null"`
	UserID            string    `gorm:"size:36;not null;index:idx_claims_user_created,priority:1"`
	InternalNote      string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"not null;index:idx_claims_user_created,priority:2"`
}

func (claimModel) TableName() string { return "claims" }

type activityModel struct {
	ID        string    `gorm:"primaryKey;size:26"`
	ClaimID   string    `gorm:"size:36;not null;index"`
	Action    string    `gorm:"size:32;not null"`
	Details   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (activityModel) TableName() string { return "claim_activity" }

type userModel struct {
	ID               string    `gorm:"primaryKey;size:36"`
	Name             string    `gorm:"not null"`
	Email            string    `gorm:"not null;uniqueIndex"`
	PasswordHash     string    `gorm:"not null"`
	Role             string    `gorm:"size:16;not null"`
	InsuranceCompany string
	CreatedAt        time.Time `gorm:"not null"`
}

func (userModel) TableName() string { return "users" }

// AutoMigrate creates or updates the SQL tables used by the GORM repositories.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &claimModel{}, &activityModel{})
}

func toClaimModel(c entities.Claim) claimModel {
	return claimModel{
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
		IncidentDate:      c.IncidentDate.UTC(),
		Location:          c.Location,
		Description:       c.Description,
		DamageCategory:    c.DamageCategory,
		UserID:            c.UserID,
		InternalNote:      c.InternalNote,
		CreatedAt:         c.CreatedAt.UTC(),
	}
}

func (m claimModel) toEntity() entities.Claim {
	return entities.Claim{
		ID:                m.ID,
		ClaimNumber:       m.ClaimNumber,
		Type:              entities.ClaimType(m.Type),
		Status:            entities.ClaimStatus(m.Status),
		PolicyholderName:  m.PolicyholderName,
		PolicyholderID:    m.PolicyholderID,
		PolicyholderEmail: m.PolicyholderEmail,
		PolicyholderPhone: m.PolicyholderPhone,
		PolicyNumber:      m.PolicyNumber,
		CoverageType:      m.CoverageType,
		IncidentDate:      m.IncidentDate.UTC(),
		Location:          m.Location,
		Description:       m.Description,
		DamageCategory:    m.DamageCategory,
		UserID:            m.UserID,
		InternalNote:      m.InternalNote,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}

func toActivityModel(e entities.ActivityLogEntry) activityModel {
	return activityModel{
		ID:        e.ID,
		ClaimID:   e.ClaimID,
		Action:    string(e.Action),
		Details:   e.Details,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (m activityModel) toEntity() entities.ActivityLogEntry {
	return entities.ActivityLogEntry{
		ID:        m.ID,
		ClaimID:   m.ClaimID,
		Action:    entities.ActivityAction(m.Action),
		Details:   m.Details,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toUserModel(u entities.User) userModel {
	return userModel{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		Role:             string(u.Role),
		InsuranceCompany: u.InsuranceCompany,
		CreatedAt:        u.CreatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Role:             entities.Role(m.Role),
		InsuranceCompany: m.InsuranceCompany,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}
