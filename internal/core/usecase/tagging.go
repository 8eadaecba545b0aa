package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
)

// TagItemUseCase drives the asynchronous tagging retry consumed by the
// worker after an inline tagging attempt degraded at upload time.
type TagItemUseCase struct {
	repo   ports.WardrobeRepository
	tagger ports.ImageTagger
}

func NewTagItemUseCase(repo ports.WardrobeRepository, tagger ports.ImageTagger) *TagItemUseCase {
	return &TagItemUseCase{repo: repo, tagger: tagger}
}

func (uc *TagItemUseCase) TagByID(ctx context.Context, itemID string) error {
	item, err := uc.repo.GetItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("fetch item by id: %w", err)
	}
	if item.TagStatus == domain.TagStatusTagged {
		return nil
	}

	tags, err := uc.tagger.TagImage(ctx, item)
	if err != nil {
		if statusErr := uc.repo.SetTagStatus(ctx, itemID, domain.TagStatusFailed, err.Error()); statusErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, statusErr)
		}
		return fmt.Errorf("tag image: %w", err)
	}

	if err := uc.repo.ReplaceTags(ctx, itemID, tags, domain.TagStatusTagged); err != nil {
		return fmt.Errorf("attach tags: %w", err)
	}
	return nil
}
