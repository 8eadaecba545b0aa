package ports

import (
	"context"
	"io"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

// WardrobeRepository persists clothing items and their tags.
type WardrobeRepository interface {
	// CreateItem writes the item and its initial tag set in one transaction.
	CreateItem(ctx context.Context, item *domain.ClothingItem) error
	GetItem(ctx context.Context, id string) (*domain.ClothingItem, error)
	// ListItems returns all items with resolved tags in insertion order.
	ListItems(ctx context.Context) ([]domain.ClothingItem, error)
	// ReplaceTags swaps the full tag set atomically and updates tag status.
	ReplaceTags(ctx context.Context, id string, tags domain.TagSet, status domain.TagStatus) error
	SetTagStatus(ctx context.Context, id string, status domain.TagStatus, reason string) error
	// DeleteItem removes an unreferenced item and returns its image path.
	// Items referenced by a saved outfit are rejected with ErrItemReferenced.
	DeleteItem(ctx context.Context, id string) (imagePath string, err error)
}

// OutfitRepository persists saved outfits and their ordered item references.
type OutfitRepository interface {
	// CreateOutfit verifies every referenced item inside the same
	// transaction as the insert; on an unknown id nothing is written.
	CreateOutfit(ctx context.Context, outfit *domain.Outfit) error
	GetOutfit(ctx context.Context, id string) (*domain.Outfit, error)
	ListOutfits(ctx context.Context) ([]domain.Outfit, error)
}

// RequestLog appends composition attempts to the user-request history.
type RequestLog interface {
	Append(ctx context.Context, record *domain.UserRequest) error
	ListRecent(ctx context.Context, limit int) ([]domain.UserRequest, error)
}

// ImageStore holds uploaded images addressed by generated identifiers.
type ImageStore interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes item-uploaded events for tagging retries.
// The transport stamps the publish time so consumers can measure lag.
type MessageQueue interface {
	PublishItemUploaded(ctx context.Context, itemID string) error
	SubscribeItemUploaded(ctx context.Context, handler func(context.Context, domain.ItemUploadedEvent) error) error
}

// ImageTagger is the vision collaborator: image in, descriptive tags out.
type ImageTagger interface {
	TagImage(ctx context.Context, item *domain.ClothingItem) (domain.TagSet, error)
}

// OutfitSelector is the reasoning collaborator: it picks item identifiers
// from the supplied snapshot in wearing order. Returned identifiers are raw
// and must be validated against the snapshot by the caller.
type OutfitSelector interface {
	SelectOutfit(ctx context.Context, occasion, preferences string, snapshot []domain.ClothingItem) ([]string, error)
}
