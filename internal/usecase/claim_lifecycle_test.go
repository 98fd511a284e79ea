package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fnol_intake/internal/adapter/persistence/repository"
	"fnol_intake/internal/domain/entities"
)

// These tests run the lifecycle against the in-memory store so the activity
// log can be observed end to end.

func newLifecycle(t *testing.T) (*ClaimUseCase, *repository.ClaimMemoryRepository) {
	t.Helper()
	repo := repository.NewClaimMemoryRepository()
	return NewClaimUseCase(repo, repository.NewUserMemoryRepository(), nil), repo
}

func TestClaimLifecycle_CreateThenClose(t *testing.T) {
	uc, repo := newLifecycle(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, client, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !claimNumberRx.MatchString(c.ClaimNumber) || c.Status != entities.ClaimStatusNew {
		t.Fatalf("unexpected claim: %+v", c)
	}

	log, _ := repo.ListActivity(ctx, c.ID)
	if len(log) != 1 || log[0].Action != entities.ActivityClaimCreated {
		t.Fatalf("expected exactly one CLAIM_CREATED entry, got %+v", log)
	}

	if err := uc.UpdateStatus(ctx, admin, c.ID, entities.ClaimStatusClosed, strPtr("resolved")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := uc.Get(ctx, admin, c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Claim.Status != entities.ClaimStatusClosed {
		t.Fatalf("expected CLOSED, got %s", d.Claim.Status)
	}
	if len(d.Activity) != 2 {
		t.Fatalf("expected two entries, got %d", len(d.Activity))
	}
	latest := d.Activity[0]
	if latest.Action != entities.ActivityStatusUpdated || !strings.Contains(latest.Details, "CLOSED") || !strings.Contains(latest.Details, "resolved") {
		t.Fatalf("unexpected latest entry: %+v", latest)
	}
}

func TestClaimLifecycle_EveryUpdateAppendsOneEntry(t *testing.T) {
	uc, repo := newLifecycle(t)
	ctx := context.Background()

	c, err := uc.Create(ctx, client, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	steps := []entities.ClaimStatus{
		entities.ClaimStatusInReview,
		entities.ClaimStatusClosed,
		entities.ClaimStatusNew, // no transition graph: CLOSED -> NEW is allowed
	}
	for i, status := range steps {
		if err := uc.UpdateStatus(ctx, admin, c.ID, status, nil); err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		stored, _ := repo.GetByID(ctx, c.ID)
		if stored.Status != status {
			t.Fatalf("step %d: expected %s, got %s", i, status, stored.Status)
		}
		log, _ := repo.ListActivity(ctx, c.ID)
		if len(log) != i+2 {
			t.Fatalf("step %d: expected %d entries, got %d", i, i+2, len(log))
		}
		if !strings.Contains(log[0].Details, string(status)) {
			t.Fatalf("step %d: latest entry %q does not mention %s", i, log[0].Details, status)
		}
	}
}

func TestClaimLifecycle_RepeatedStatusIsNotDeduplicated(t *testing.T) {
	uc, repo := newLifecycle(t)
	ctx := context.Background()

	c, _ := uc.Create(ctx, client, validInput())
	for i := 0; i < 2; i++ {
		if err := uc.UpdateStatus(ctx, admin, c.ID, entities.ClaimStatusInReview, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	log, _ := repo.ListActivity(ctx, c.ID)
	if len(log) != 3 {
		t.Fatalf("expected creation + two status entries, got %d", len(log))
	}
}

func TestClaimLifecycle_RejectedUpdateLeavesNoTrace(t *testing.T) {
	uc, repo := newLifecycle(t)
	ctx := context.Background()

	c, _ := uc.Create(ctx, client, validInput())

	err := uc.UpdateStatus(ctx, client, c.ID, entities.ClaimStatusClosed, strPtr("self-approved"))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	stored, _ := repo.GetByID(ctx, c.ID)
	if stored.Status != entities.ClaimStatusNew || stored.InternalNote != "" {
		t.Fatalf("claim mutated by non-admin: %+v", stored)
	}
	log, _ := repo.ListActivity(ctx, c.ID)
	if len(log) != 1 {
		t.Fatalf("expected no new entries, got %d", len(log))
	}
}

func TestClaimLifecycle_Visibility(t *testing.T) {
	uc, _ := newLifecycle(t)
	ctx := context.Background()

	c, _ := uc.Create(ctx, client, validInput())
	stranger := entities.Identity{UserID: "user-2", Name: "Other", Role: entities.RoleClient}

	_, errForeign := uc.Get(ctx, stranger, c.ID)
	_, errMissing := uc.Get(ctx, stranger, "does-not-exist")
	if !errors.Is(errForeign, ErrClaimNotFound) || errForeign != errMissing {
		t.Fatalf("expected identical not-found errors, got %v / %v", errForeign, errMissing)
	}

	mine, err := uc.ListForUser(ctx, client)
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one claim for owner, got %v %v", mine, err)
	}
	theirs, err := uc.ListForUser(ctx, stranger)
	if err != nil || len(theirs) != 0 {
		t.Fatalf("expected no claims for stranger, got %v %v", theirs, err)
	}
}
