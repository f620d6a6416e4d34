package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTranslationService_SetText(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewTranslationService(f.repo)
	ctx := context.Background()
	ownerID := uuid.New()

	items, err := f.lifecycle.InstanceCreated(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("InstanceCreated() error = %v", err)
	}

	updated, err := svc.SetText(ctx, SetTextRequest{ItemID: items["title"], LanguageID: f.fr.ID, Text: "Maison"})
	if err != nil {
		t.Fatalf("SetText() error = %v", err)
	}
	if updated.Text != "Maison" {
		t.Fatalf("SetText() text = %q", updated.Text)
	}

	text, err := svc.GetText(ctx, items["title"], f.fr.ID)
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if text != "Maison" {
		t.Fatalf("GetText() = %q", text)
	}

	// Clearing back to the missing state is a legal edit.
	if _, err := svc.SetText(ctx, SetTextRequest{ItemID: items["title"], LanguageID: f.fr.ID, Text: ""}); err != nil {
		t.Fatalf("SetText() clear error = %v", err)
	}
	empty, err := svc.CountEmpty(ctx, f.fr.ID)
	if err != nil {
		t.Fatalf("CountEmpty() error = %v", err)
	}
	if empty != 2 {
		t.Fatalf("CountEmpty() = %d, want 2", empty)
	}
}

func TestTranslationService_SetTextByID(t *testing.T) {
	fixedTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	f := newLifecycleFixture(t)
	svc := NewTranslationService(f.repo, WithClock(func() time.Time { return fixedTime }))
	ctx := context.Background()
	ownerID := uuid.New()

	items, err := f.lifecycle.InstanceCreated(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("InstanceCreated() error = %v", err)
	}

	blank, err := f.repo.GetTranslation(ctx, items["title"], f.fr.ID)
	if err != nil {
		t.Fatalf("GetTranslation() error = %v", err)
	}

	updated, err := svc.SetTextByID(ctx, blank.ID, "Maison")
	if err != nil {
		t.Fatalf("SetTextByID() error = %v", err)
	}
	if updated.Text != "Maison" {
		t.Fatalf("SetTextByID() text = %q", updated.Text)
	}
	if !updated.UpdatedAt.Equal(fixedTime) {
		t.Fatalf("SetTextByID() stamp = %v, want %v", updated.UpdatedAt, fixedTime)
	}

	text, err := svc.GetText(ctx, items["title"], f.fr.ID)
	if err != nil {
		t.Fatalf("GetText() error = %v", err)
	}
	if text != "Maison" {
		t.Fatalf("GetText() = %q", text)
	}

	if _, err := svc.SetTextByID(ctx, uuid.Nil, "x"); !errors.Is(err, ErrTranslationIDRequired) {
		t.Fatalf("expected ErrTranslationIDRequired, got %v", err)
	}
	var notFound *NotFoundError
	if _, err := svc.SetTextByID(ctx, uuid.New(), "x"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestTranslationService_SetTextValidation(t *testing.T) {
	svc := NewTranslationService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.SetText(ctx, SetTextRequest{LanguageID: uuid.New()}); err == nil {
		t.Fatal("expected validation error for missing item id")
	}
	if _, err := svc.SetText(ctx, SetTextRequest{ItemID: uuid.New()}); err == nil {
		t.Fatal("expected validation error for missing language id")
	}

	var notFound *NotFoundError
	if _, err := svc.SetText(ctx, SetTextRequest{ItemID: uuid.New(), LanguageID: uuid.New(), Text: "x"}); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestTranslationService_ListForOwner(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewTranslationService(f.repo)
	ctx := context.Background()
	ownerID := uuid.New()

	if _, err := f.lifecycle.InstanceCreated(ctx, "portfolio.project", ownerID); err != nil {
		t.Fatalf("InstanceCreated() error = %v", err)
	}

	translations, err := svc.ListForOwner(ctx, "portfolio.project", ownerID)
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(translations) != 4 {
		t.Fatalf("ListForOwner() returned %d translations, want 4", len(translations))
	}

	if _, err := svc.ListForOwner(ctx, "", ownerID); !errors.Is(err, ErrOwnerModelRequired) {
		t.Fatalf("expected ErrOwnerModelRequired, got %v", err)
	}
	if _, err := svc.ListForOwner(ctx, "portfolio.project", uuid.Nil); !errors.Is(err, ErrOwnerIDRequired) {
		t.Fatalf("expected ErrOwnerIDRequired, got %v", err)
	}
}
