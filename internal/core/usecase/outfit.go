package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
)

type SaveOutfitUseCase struct {
	outfits ports.OutfitRepository
}

func NewSaveOutfitUseCase(outfits ports.OutfitRepository) *SaveOutfitUseCase {
	return &SaveOutfitUseCase{outfits: outfits}
}

// Save persists an explicit selection. Existence of every referenced item
// is checked by the repository inside the insert transaction, so a stale
// identifier rejects the whole save.
func (uc *SaveOutfitUseCase) Save(ctx context.Context, name, occasion string, itemIDs []string) (*domain.Outfit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "save outfit", fmt.Errorf("name is required"))
	}
	if len(itemIDs) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "save outfit", fmt.Errorf("item_ids must not be empty"))
	}

	outfit := &domain.Outfit{
		ID:        uuid.NewString(),
		Name:      name,
		Occasion:  strings.TrimSpace(occasion),
		Items:     make([]domain.OutfitItem, 0, len(itemIDs)),
		CreatedAt: time.Now().UTC(),
	}
	for idx, itemID := range itemIDs {
		itemID = strings.TrimSpace(itemID)
		if itemID == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "save outfit", fmt.Errorf("item_ids[%d] is empty", idx))
		}
		outfit.Items = append(outfit.Items, domain.OutfitItem{ItemID: itemID, Position: idx + 1})
	}

	if err := uc.outfits.CreateOutfit(ctx, outfit); err != nil {
		return nil, fmt.Errorf("create outfit: %w", err)
	}
	return outfit, nil
}
