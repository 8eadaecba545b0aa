package ports

import (
	"context"
	"io"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

// ItemIngestor is the inbound contract for image intake. Tagging is
// best-effort: the item is stored even when the collaborator fails.
type ItemIngestor interface {
	Upload(ctx context.Context, name, mimeType string, body io.Reader) (*domain.UploadResult, error)
}

// TaggingProcessor is the inbound contract for asynchronous tagging retries.
type TaggingProcessor interface {
	TagByID(ctx context.Context, itemID string) error
}

// OutfitComposerService composes an outfit against the current catalog.
type OutfitComposerService interface {
	ComposeForWardrobe(ctx context.Context, occasion, preferences string) (*domain.Composition, error)
}

// OutfitSaver persists an explicit outfit selection.
type OutfitSaver interface {
	Save(ctx context.Context, name, occasion string, itemIDs []string) (*domain.Outfit, error)
}

// ItemRemover deletes a catalog item and its stored image.
type ItemRemover interface {
	Delete(ctx context.Context, itemID string) error
}
