package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/outfit-assistant/internal/core/ports"
)

// DeleteItemUseCase removes a catalog item. Deletion is rejected while any
// saved outfit references the item; on success the stored image file is
// removed best-effort.
type DeleteItemUseCase struct {
	repo  ports.WardrobeRepository
	store ports.ImageStore
}

func NewDeleteItemUseCase(repo ports.WardrobeRepository, store ports.ImageStore) *DeleteItemUseCase {
	return &DeleteItemUseCase{repo: repo, store: store}
}

func (uc *DeleteItemUseCase) Delete(ctx context.Context, itemID string) error {
	imagePath, err := uc.repo.DeleteItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if err := uc.store.Remove(ctx, imagePath); err != nil {
		slog.Warn("image_cleanup_failed", "item_id", itemID, "image_path", imagePath, "error", err)
	}
	return nil
}
