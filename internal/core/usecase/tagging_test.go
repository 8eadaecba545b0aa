package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

func TestTagByIDReplacesTags(t *testing.T) {
	repo := &wardrobeFake{items: map[string]*domain.ClothingItem{
		"item-1": {ID: "item-1", ImagePath: "item-1.png", TagStatus: domain.TagStatusPending},
	}}
	tagger := &taggerFake{tags: domain.TagSet{"type": {"jacket"}}}
	uc := NewTagItemUseCase(repo, tagger)

	if err := uc.TagByID(context.Background(), "item-1"); err != nil {
		t.Fatalf("TagByID() error = %v", err)
	}
	if repo.replacedID != "item-1" || repo.replacedStatus != domain.TagStatusTagged {
		t.Fatalf("expected tags replaced for item-1, got id=%s status=%s", repo.replacedID, repo.replacedStatus)
	}
	if len(repo.replacedTags["type"]) != 1 {
		t.Fatalf("expected type tag persisted, got %+v", repo.replacedTags)
	}
}

func TestTagByIDSkipsAlreadyTagged(t *testing.T) {
	repo := &wardrobeFake{items: map[string]*domain.ClothingItem{
		"item-1": {ID: "item-1", TagStatus: domain.TagStatusTagged},
	}}
	tagger := &taggerFake{}
	uc := NewTagItemUseCase(repo, tagger)

	if err := uc.TagByID(context.Background(), "item-1"); err != nil {
		t.Fatalf("TagByID() error = %v", err)
	}
	if tagger.calls != 0 {
		t.Fatalf("collaborator must not be called for a tagged item, got %d calls", tagger.calls)
	}
}

func TestTagByIDMarksFailureStatus(t *testing.T) {
	repo := &wardrobeFake{items: map[string]*domain.ClothingItem{
		"item-1": {ID: "item-1", TagStatus: domain.TagStatusPending},
	}}
	tagger := &taggerFake{err: errors.New("vision down")}
	uc := NewTagItemUseCase(repo, tagger)

	err := uc.TagByID(context.Background(), "item-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.statusID != "item-1" || repo.statusSet != domain.TagStatusFailed {
		t.Fatalf("expected failed status recorded, got id=%s status=%s", repo.statusID, repo.statusSet)
	}
	if repo.statusReason == "" {
		t.Fatalf("expected failure reason recorded")
	}
}

func TestTagByIDUnknownItem(t *testing.T) {
	uc := NewTagItemUseCase(&wardrobeFake{}, &taggerFake{})

	err := uc.TagByID(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrItemNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
