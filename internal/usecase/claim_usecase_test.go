package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
	mock_interfaces "fnol_intake/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var claimNumberRx = regexp.MustCompile(`^FNOL-\d{6}$`)

var (
	client = entities.Identity{UserID: "user-1", Name: "Jane Roe", Email: "jane@x.com", Role: entities.RoleClient}
	admin  = entities.Identity{UserID: "admin-1", Name: "Admin Demo", Email: "admin@fnolpro.com", Role: entities.RoleAdmin}
)

func validInput() ClaimInput {
	return ClaimInput{
		Type:              "AUTO",
		PolicyholderName:  "Jane Roe",
		PolicyholderID:    "X1",
		PolicyholderEmail: "jane@x.com",
		PolicyholderPhone: "555-0100",
		PolicyNumber:      "P-1",
		CoverageType:      "Comprehensive",
		IncidentDate:      "2026-01-01",
		Location:          "Main St",
		Description:       "Rear collision at intersection",
		DamageCategory:    "Collision",
	}
}

func strPtr(s string) *string { return &s }

func TestClaimUseCase_Create(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		uc := NewClaimUseCase(nil, nil, nil)
		_, err := uc.Create(context.Background(), entities.Identity{}, validInput())
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("validation errors are reported per field", func(t *testing.T) {
		uc := NewClaimUseCase(nil, nil, nil)
		in := validInput()
		in.Type = "BOAT"
		in.PolicyholderEmail = "not-an-email"
		in.Description = "short"
		in.IncidentDate = "someday"
		in.PolicyholderPhone = "1234"

		_, err := uc.Create(context.Background(), client, in)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		for _, field := range []string{"type", "policyholder_email", "description", "incident_date", "policyholder_phone"} {
			if verr.Fields[field] == "" {
				t.Fatalf("expected error for %s, got %+v", field, verr.Fields)
			}
		}
		if _, ok := verr.Fields["location"]; ok {
			t.Fatalf("did not expect error for location: %+v", verr.Fields)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewClaimUseCase(repo, nil, notifier)

		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Claim, entry entities.ActivityLogEntry) (entities.Claim, error) {
				if c.ID == "" || c.Status != entities.ClaimStatusNew || c.UserID != "user-1" || c.Type != entities.ClaimTypeAuto {
					t.Fatalf("unexpected claim: %+v", c)
				}
				if !claimNumberRx.MatchString(c.ClaimNumber) {
					t.Fatalf("unexpected claim number %q", c.ClaimNumber)
				}
				if !c.IncidentDate.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) || c.CreatedAt.IsZero() {
					t.Fatalf("unexpected dates: %+v", c)
				}
				if entry.ClaimID != c.ID || entry.Action != entities.ActivityClaimCreated || entry.ID == "" {
					t.Fatalf("unexpected entry: %+v", entry)
				}
				if entry.Details != "Claim created by Jane Roe (jane@x.com)" {
					t.Fatalf("unexpected details: %q", entry.Details)
				}
				return c, nil
			},
		)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, n entities.Notification) error {
				if n.Recipient != "jane@x.com" || !strings.HasPrefix(n.Subject, "Claim FNOL-") || !strings.Contains(n.Body, "Jane Roe") {
					t.Fatalf("unexpected notification: %+v", n)
				}
				return nil
			},
		)

		c, err := uc.Create(context.Background(), client, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Status != entities.ClaimStatusNew || !claimNumberRx.MatchString(c.ClaimNumber) {
			t.Fatalf("unexpected result: %+v", c)
		}
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		uc := NewClaimUseCase(repo, nil, notifier)

		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c entities.Claim, _ entities.ActivityLogEntry) (entities.Claim, error) { return c, nil },
		)
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		if _, err := uc.Create(context.Background(), client, validInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("retries on claim number collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		numbers := []string{"FNOL-111111", "FNOL-222222"}
		uc.claimNumber = func() string {
			n := numbers[0]
			numbers = numbers[1:]
			return n
		}

		gomock.InOrder(
			repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Claim{}, interfaces.ErrClaimNumberTaken),
			repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, c entities.Claim, _ entities.ActivityLogEntry) (entities.Claim, error) { return c, nil },
			),
		)

		c, err := uc.Create(context.Background(), client, validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ClaimNumber != "FNOL-222222" {
			t.Fatalf("expected second number, got %s", c.ClaimNumber)
		}
	})

	t.Run("gives up after repeated collisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)

		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Claim{}, interfaces.ErrClaimNumberTaken).
			Times(maxClaimNumberAttempts)

		_, err := uc.Create(context.Background(), client, validInput())
		if !errors.Is(err, ErrClaimNumberConflict) {
			t.Fatalf("expected ErrClaimNumberConflict, got %v", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Claim{}, errors.New("db"))

		_, err := uc.Create(context.Background(), client, validInput())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestClaimUseCase_UpdateStatus(t *testing.T) {
	t.Run("non admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)

		err := uc.UpdateStatus(context.Background(), client, "c-1", entities.ClaimStatusClosed, nil)
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		uc := NewClaimUseCase(nil, nil, nil)
		err := uc.UpdateStatus(context.Background(), admin, "c-1", entities.ClaimStatus("DONE"), nil)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "missing", entities.ClaimStatusClosed, nil, gomock.Any()).Return(entities.Claim{}, nil)

		err := uc.UpdateStatus(context.Background(), admin, "missing", entities.ClaimStatusClosed, nil)
		if !errors.Is(err, ErrClaimNotFound) {
			t.Fatalf("expected ErrClaimNotFound, got %v", err)
		}
	})

	t.Run("success with note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)

		repo.EXPECT().UpdateStatus(gomock.Any(), "c-1", entities.ClaimStatusClosed, gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, status entities.ClaimStatus, note *string, entry entities.ActivityLogEntry) (entities.Claim, error) {
				if note == nil || *note != "resolved" {
					t.Fatalf("expected trimmed note, got %v", note)
				}
				if entry.Action != entities.ActivityStatusUpdated || entry.ClaimID != "c-1" {
					t.Fatalf("unexpected entry: %+v", entry)
				}
				if entry.Details != "Status changed to CLOSED by admin Admin Demo. Note: resolved" {
					t.Fatalf("unexpected details: %q", entry.Details)
				}
				return entities.Claim{ID: id, Status: status, InternalNote: *note}, nil
			},
		)

		if err := uc.UpdateStatus(context.Background(), admin, " c-1 ", entities.ClaimStatusClosed, strPtr("  resolved ")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("blank note is dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)

		repo.EXPECT().UpdateStatus(gomock.Any(), "c-1", entities.ClaimStatusInReview, nil, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string, status entities.ClaimStatus, _ *string, entry entities.ActivityLogEntry) (entities.Claim, error) {
				if strings.Contains(entry.Details, "Note:") {
					t.Fatalf("unexpected note in details: %q", entry.Details)
				}
				return entities.Claim{ID: id, Status: status}, nil
			},
		)

		if err := uc.UpdateStatus(context.Background(), admin, "c-1", entities.ClaimStatusInReview, strPtr("   ")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestClaimUseCase_Get(t *testing.T) {
	stored := entities.Claim{ID: "c-1", UserID: "user-1", InternalNote: "fraud check"}
	activity := []entities.ActivityLogEntry{
		{ID: "01A", ClaimID: "c-1", Action: entities.ActivityClaimCreated},
		{ID: "01B", ClaimID: "c-1", Action: entities.ActivityStatusUpdated},
	}

	t.Run("missing and foreign claims look the same", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Claim{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(stored, nil)

		stranger := entities.Identity{UserID: "user-2", Role: entities.RoleClient}
		_, errMissing := uc.Get(context.Background(), stranger, "missing")
		_, errForeign := uc.Get(context.Background(), stranger, "c-1")
		if !errors.Is(errMissing, ErrClaimNotFound) || errMissing != errForeign {
			t.Fatalf("expected identical not-found errors, got %v / %v", errMissing, errForeign)
		}
	})

	t.Run("owner sees activity newest first without internal note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(stored, nil)
		repo.EXPECT().ListActivity(gomock.Any(), "c-1").Return(append([]entities.ActivityLogEntry(nil), activity...), nil)

		d, err := uc.Get(context.Background(), client, "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Claim.InternalNote != "" {
			t.Fatalf("internal note leaked to owner")
		}
		if len(d.Activity) != 2 || d.Activity[0].ID != "01B" {
			t.Fatalf("expected newest first, got %+v", d.Activity)
		}
	})

	t.Run("admin sees internal note", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), "c-1").Return(stored, nil)
		repo.EXPECT().ListActivity(gomock.Any(), "c-1").Return(nil, nil)

		d, err := uc.Get(context.Background(), admin, "c-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Claim.InternalNote != "fraud check" {
			t.Fatalf("expected internal note for admin")
		}
	})
}

func TestClaimUseCase_Lists(t *testing.T) {
	t.Run("list for user returns empty slice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		uc := NewClaimUseCase(repo, nil, nil)
		repo.EXPECT().ListByUserID(gomock.Any(), "user-1").Return(nil, nil)

		res, err := uc.ListForUser(context.Background(), client)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res == nil || len(res) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", res)
		}
	})

	t.Run("list all requires admin", func(t *testing.T) {
		uc := NewClaimUseCase(nil, nil, nil)
		if _, err := uc.ListAll(context.Background(), client); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("list all joins owners newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIClaimRepository(ctrl)
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewClaimUseCase(repo, users, nil)

		older := entities.Claim{ID: "c-1", UserID: "user-1", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
		newer := entities.Claim{ID: "c-2", UserID: "user-1", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
		repo.EXPECT().ListAll(gomock.Any()).Return([]entities.Claim{older, newer}, nil)
		users.EXPECT().GetByIDs(gomock.Any(), []string{"user-1"}).Return(map[string]entities.User{
			"user-1": {ID: "user-1", Name: "Jane Roe", Email: "jane@x.com"},
		}, nil)

		res, err := uc.ListAll(context.Background(), admin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[0].ID != "c-2" || res[0].OwnerName != "Jane Roe" || res[1].OwnerEmail != "jane@x.com" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}
