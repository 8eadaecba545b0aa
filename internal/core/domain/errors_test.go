package domain

import (
	"errors"
	"testing"
)

func TestWrapErrorKeepsKindAndCause(t *testing.T) {
	cause := errors.New("id=42")
	err := WrapError(ErrItemNotFound, "get item", cause)

	if !IsKind(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound kind, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if IsKind(err, ErrOutfitNotFound) {
		t.Fatalf("kinds must not cross-match")
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(ErrInvalidInput, "op", nil); err != nil {
		t.Fatalf("expected nil for nil cause, got %v", err)
	}
}

func TestImageExtensions(t *testing.T) {
	if !AcceptedImageType("image/jpeg") || ImageExtension("image/jpeg") != ".jpg" {
		t.Fatalf("expected jpeg accepted with .jpg extension")
	}
	if AcceptedImageType("application/pdf") {
		t.Fatalf("pdf must be rejected")
	}
	if ImageExtension("application/pdf") != "" {
		t.Fatalf("rejected types have no extension")
	}
}

func TestTagSetEmpty(t *testing.T) {
	if !(TagSet{}).Empty() {
		t.Fatalf("empty set must report empty")
	}
	if !(TagSet{"type": {}}).Empty() {
		t.Fatalf("set with no values must report empty")
	}
	if (TagSet{"type": {"shirt"}}).Empty() {
		t.Fatalf("set with a value must not report empty")
	}
}
