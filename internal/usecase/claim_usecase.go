package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
	"fnol_intake/pkg/logger"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const maxClaimNumberAttempts = 5

// ClaimInput is the intake form submitted by a policyholder.
type ClaimInput struct {
	Type              string `json:"type" validate:"required,oneof=AUTO HOME BUSINESS"`
	PolicyholderName  string `json:"policyholder_name" validate:"min=2"`
	PolicyholderID    string `json:"policyholder_id" validate:"min=2"`
	PolicyholderEmail string `json:"policyholder_email" validate:"required,email"`
	PolicyholderPhone string `json:"policyholder_phone" validate:"min=5"`
	PolicyNumber      string `json:"policy_number" validate:"min=3"`
	CoverageType      string `json:"coverage_type" validate:"min=2"`
	IncidentDate      string `json:"incident_date" validate:"required,incident_date"`
	Location          string `json:"location" validate:"min=3"`
	Description       string `json:"description" validate:"min=10"`
	DamageCategory    string `json:"damage_category" validate:"min=2"`
}

// IClaimUseCase is the claim lifecycle.
//
// Authorization rules:
//   - Create / ListForUser: any authenticated identity.
//   - Get: the owner or an admin; anyone else gets ErrClaimNotFound, same as a
//     missing claim.
//   - UpdateStatus / ListAll: admins only.

type IClaimUseCase interface {
	Create(ctx context.Context, submitter entities.Identity, input ClaimInput) (entities.Claim, error)
	UpdateStatus(ctx context.Context, actor entities.Identity, claimID string, status entities.ClaimStatus, internalNote *string) error
	Get(ctx context.Context, viewer entities.Identity, claimID string) (entities.ClaimDetail, error)
	ListForUser(ctx context.Context, identity entities.Identity) ([]entities.Claim, error)
	ListAll(ctx context.Context, actor entities.Identity) ([]entities.ClaimWithOwner, error)
}

type ClaimUseCase struct {
	repo     interfaces.IClaimRepository
	users    interfaces.IUserRepository
	notifier interfaces.INotifier
	log      *logger.Logger

	now         func() time.Time
	claimNumber func() string
}

var _ IClaimUseCase = (*ClaimUseCase)(nil)

func NewClaimUseCase(repo interfaces.IClaimRepository, users interfaces.IUserRepository, notifier interfaces.INotifier) *ClaimUseCase {
	return &ClaimUseCase{
		repo:        repo,
		users:       users,
		notifier:    notifier,
		log:         logger.Default().Component("claim.usecase"),
		now:         time.Now,
		claimNumber: randomClaimNumber,
	}
}

// randomClaimNumber returns "FNOL-" followed by six digits. Numbers are random,
// not sequential, so collisions are possible and handled by Create.
func randomClaimNumber() string {
	return fmt.Sprintf("FNOL-%06d", 100000+rand.IntN(900000))
}

func newActivityEntry(claimID string, action entities.ActivityAction, details string, at time.Time) entities.ActivityLogEntry {
	return entities.ActivityLogEntry{
		ID:        ulid.Make().String(),
		ClaimID:   claimID,
		Action:    action,
		Details:   details,
		CreatedAt: at,
	}
}

func (u *ClaimUseCase) Create(ctx context.Context, submitter entities.Identity, input ClaimInput) (entities.Claim, error) {
	if !submitter.IsAuthenticated() {
		return entities.Claim{}, ErrUnauthorized
	}
	if err := validateStruct(input); err != nil {
		return entities.Claim{}, err
	}
	incidentDate, err := parseIncidentDate(input.IncidentDate)
	if err != nil {
		return entities.Claim{}, newFieldError("incident_date", "must be a valid date (YYYY-MM-DD)")
	}

	now := u.now().UTC()
	claim := entities.Claim{
		ID:                uuid.NewString(),
		Type:              entities.ClaimType(input.Type),
		Status:            entities.ClaimStatusNew,
		PolicyholderName:  input.PolicyholderName,
		PolicyholderID:    input.PolicyholderID,
		PolicyholderEmail: input.PolicyholderEmail,
		PolicyholderPhone: input.PolicyholderPhone,
		PolicyNumber:      input.PolicyNumber,
		CoverageType:      input.CoverageType,
		IncidentDate:      incidentDate,
		Location:          input.Location,
		Description:       input.Description,
		DamageCategory:    input.DamageCategory,
		UserID:            submitter.UserID,
		CreatedAt:         now,
	}
	details := fmt.Sprintf("Claim created by %s (%s)", submitter.Name, submitter.Email)

	for attempt := 1; attempt <= maxClaimNumberAttempts; attempt++ {
		claim.ClaimNumber = u.claimNumber()
		entry := newActivityEntry(claim.ID, entities.ActivityClaimCreated, details, now)

		created, err := u.repo.Create(ctx, claim, entry)
		if errors.Is(err, interfaces.ErrClaimNumberTaken) {
			u.log.Warnf("claim number collision claim_number=%s attempt=%d", claim.ClaimNumber, attempt)
			continue
		}
		if err != nil {
			u.log.Errorf(err, "create failed user_id=%s", submitter.UserID)
			return entities.Claim{}, err
		}

		u.log.Infof("claim created claim_id=%s claim_number=%s user_id=%s", created.ID, created.ClaimNumber, created.UserID)
		u.notifyCreated(ctx, created)
		return created, nil
	}
	return entities.Claim{}, ErrClaimNumberConflict
}

// notifyCreated tells the policyholder the claim was registered. Delivery is
// best-effort: failures are logged and never reach the caller.
func (u *ClaimUseCase) notifyCreated(ctx context.Context, c entities.Claim) {
	if u.notifier == nil {
		return
	}
	n := entities.Notification{
		Recipient: c.PolicyholderEmail,
		Subject:   fmt.Sprintf("Claim %s Registered", c.ClaimNumber),
		Body:      fmt.Sprintf("Hello %s, your claim has been received and is under review.", c.PolicyholderName),
	}
	if err := u.notifier.Notify(ctx, n); err != nil {
		u.log.Errorf(err, "notification failed claim_id=%s recipient=%s", c.ID, n.Recipient)
	}
}

func (u *ClaimUseCase) UpdateStatus(ctx context.Context, actor entities.Identity, claimID string, status entities.ClaimStatus, internalNote *string) error {
	if !actor.IsAdmin() {
		return ErrUnauthorized
	}
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return ErrClaimNotFound
	}
	if !status.Valid() {
		return newFieldError("status", "must be one of: NEW IN_REVIEW CLOSED")
	}

	var note *string
	if internalNote != nil {
		if n := strings.TrimSpace(*internalNote); n != "" {
			note = &n
		}
	}

	details := fmt.Sprintf("Status changed to %s by admin %s.", status, actor.Name)
	if note != nil {
		details += " Note: " + *note
	}
	entry := newActivityEntry(claimID, entities.ActivityStatusUpdated, details, u.now().UTC())

	updated, err := u.repo.UpdateStatus(ctx, claimID, status, note, entry)
	if err != nil {
		u.log.Errorf(err, "status update failed claim_id=%s status=%s", claimID, status)
		return err
	}
	if updated.ID == "" {
		return ErrClaimNotFound
	}

	u.log.Infof("claim status updated claim_id=%s status=%s admin=%s", claimID, status, actor.UserID)
	return nil
}

func (u *ClaimUseCase) Get(ctx context.Context, viewer entities.Identity, claimID string) (entities.ClaimDetail, error) {
	claimID = strings.TrimSpace(claimID)
	if claimID == "" || !viewer.IsAuthenticated() {
		return entities.ClaimDetail{}, ErrClaimNotFound
	}

	c, err := u.repo.GetByID(ctx, claimID)
	if err != nil {
		return entities.ClaimDetail{}, err
	}
	if c.ID == "" || !viewer.CanView(c) {
		return entities.ClaimDetail{}, ErrClaimNotFound
	}

	activity, err := u.repo.ListActivity(ctx, c.ID)
	if err != nil {
		return entities.ClaimDetail{}, err
	}
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].ID > activity[j].ID
	})

	if !viewer.IsAdmin() {
		c.InternalNote = ""
	}
	return entities.ClaimDetail{Claim: c, Activity: activity}, nil
}

func (u *ClaimUseCase) ListForUser(ctx context.Context, identity entities.Identity) ([]entities.Claim, error) {
	if !identity.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	claims, err := u.repo.ListByUserID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if claims == nil {
		claims = []entities.Claim{}
	}
	sortNewestFirst(claims)
	for i := range claims {
		claims[i].InternalNote = ""
	}
	return claims, nil
}

func (u *ClaimUseCase) ListAll(ctx context.Context, actor entities.Identity) ([]entities.ClaimWithOwner, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	claims, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(claims)

	ids := make([]string, 0, len(claims))
	seen := make(map[string]struct{}, len(claims))
	for _, c := range claims {
		if _, ok := seen[c.UserID]; ok {
			continue
		}
		seen[c.UserID] = struct{}{}
		ids = append(ids, c.UserID)
	}

	owners := map[string]entities.User{}
	if len(ids) > 0 {
		owners, err = u.users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	out := make([]entities.ClaimWithOwner, 0, len(claims))
	for _, c := range claims {
		owner := owners[c.UserID]
		out = append(out, entities.ClaimWithOwner{Claim: c, OwnerName: owner.Name, OwnerEmail: owner.Email})
	}
	return out, nil
}

func sortNewestFirst(claims []entities.Claim) {
	sort.SliceStable(claims, func(i, j int) bool {
		return claims[i].CreatedAt.After(claims[j].CreatedAt)
	})
}
