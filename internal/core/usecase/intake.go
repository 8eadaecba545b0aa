package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
)

const taggingUnavailableWarning = "automatic tagging unavailable; item saved without tags"

type IntakeItemUseCase struct {
	repo       ports.WardrobeRepository
	store      ports.ImageStore
	queue      ports.MessageQueue
	tagger     ports.ImageTagger
	tagTimeout time.Duration
}

func NewIntakeItemUseCase(
	repo ports.WardrobeRepository,
	store ports.ImageStore,
	queue ports.MessageQueue,
	tagger ports.ImageTagger,
	tagTimeout time.Duration,
) *IntakeItemUseCase {
	if tagTimeout <= 0 {
		tagTimeout = 15 * time.Second
	}
	return &IntakeItemUseCase{
		repo:       repo,
		store:      store,
		queue:      queue,
		tagger:     tagger,
		tagTimeout: tagTimeout,
	}
}

// Upload validates the declared media type, persists the image under a
// generated identifier, creates the catalog row and then tags best-effort.
// A collaborator failure never fails the upload: the item stays with zero
// tags, the result carries a warning and a retry event is published.
func (uc *IntakeItemUseCase) Upload(ctx context.Context, name, mimeType string, body io.Reader) (*domain.UploadResult, error) {
	if !domain.AcceptedImageType(mimeType) {
		return nil, domain.WrapError(domain.ErrUnsupportedMedia, "upload", fmt.Errorf("declared content type %q", mimeType))
	}

	id := uuid.NewString()
	imagePath := id + domain.ImageExtension(mimeType)
	now := time.Now().UTC()

	if err := uc.store.Save(ctx, imagePath, body); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	item := &domain.ClothingItem{
		ID:        id,
		Name:      strings.TrimSpace(name),
		ImagePath: imagePath,
		MimeType:  mimeType,
		Tags:      domain.TagSet{},
		TagStatus: domain.TagStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create catalog item: %w", err)
	}

	result := &domain.UploadResult{Item: item}

	tagCtx, cancel := context.WithTimeout(ctx, uc.tagTimeout)
	defer cancel()
	tags, err := uc.tagger.TagImage(tagCtx, item)
	if err != nil {
		slog.Warn("inline_tagging_failed", "item_id", item.ID, "error", err)
		uc.degradeToRetry(ctx, result)
		return result, nil
	}

	// The item row is already committed, so a failed tag write degrades
	// the same way a tagger outage does: the upload still succeeds and
	// the worker retries from the queue.
	if err := uc.repo.ReplaceTags(ctx, item.ID, tags, domain.TagStatusTagged); err != nil {
		slog.Warn("persist_tags_failed", "item_id", item.ID, "error", err)
		uc.degradeToRetry(ctx, result)
		return result, nil
	}
	item.Tags = tags
	item.TagStatus = domain.TagStatusTagged
	return result, nil
}

func (uc *IntakeItemUseCase) degradeToRetry(ctx context.Context, result *domain.UploadResult) {
	result.TagWarning = taggingUnavailableWarning
	if pubErr := uc.queue.PublishItemUploaded(ctx, result.Item.ID); pubErr != nil {
		slog.Error("publish_tagging_retry_failed", "item_id", result.Item.ID, "error", pubErr)
	}
}
