package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
	"github.com/kirillkom/outfit-assistant/internal/core/ports"
)

// ComposeOutfitUseCase delegates outfit selection to the reasoning
// collaborator and validates the returned identifiers against the snapshot
// it supplied. It never retries the collaborator and never persists the
// resulting composition; only the request history is appended.
type ComposeOutfitUseCase struct {
	repo     ports.WardrobeRepository
	selector ports.OutfitSelector
	requests ports.RequestLog
	timeout  time.Duration
}

func NewComposeOutfitUseCase(
	repo ports.WardrobeRepository,
	selector ports.OutfitSelector,
	requests ports.RequestLog,
	timeout time.Duration,
) *ComposeOutfitUseCase {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &ComposeOutfitUseCase{
		repo:     repo,
		selector: selector,
		requests: requests,
		timeout:  timeout,
	}
}

func (uc *ComposeOutfitUseCase) ComposeForWardrobe(ctx context.Context, occasion, preferences string) (*domain.Composition, error) {
	occasion = strings.TrimSpace(occasion)
	preferences = strings.TrimSpace(preferences)
	if occasion == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "compose outfit", fmt.Errorf("occasion is required"))
	}

	snapshot, err := uc.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog snapshot: %w", err)
	}

	composition, err := uc.Compose(ctx, occasion, preferences, snapshot)
	uc.appendHistory(ctx, occasion, preferences, composition, err)
	if err != nil {
		return nil, err
	}
	return composition, nil
}

// Compose runs the selection against an explicit snapshot so the validation
// and ordering logic is pure with respect to its inputs.
func (uc *ComposeOutfitUseCase) Compose(ctx context.Context, occasion, preferences string, snapshot []domain.ClothingItem) (*domain.Composition, error) {
	if len(snapshot) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyCatalog, "compose outfit", fmt.Errorf("no items in wardrobe"))
	}

	selectCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	selectedIDs, err := uc.selector.SelectOutfit(selectCtx, occasion, preferences, snapshot)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCompositionFailed, "select outfit", err)
	}

	byID := make(map[string]domain.ClothingItem, len(snapshot))
	for _, item := range snapshot {
		byID[item.ID] = item
	}

	seen := make(map[string]struct{}, len(selectedIDs))
	ordered := make([]domain.ClothingItem, 0, len(selectedIDs))
	dropped := make([]string, 0)
	for _, id := range selectedIDs {
		id = strings.TrimSpace(id)
		if _, duplicate := seen[id]; duplicate {
			continue
		}
		item, ok := byID[id]
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, item)
	}

	if len(ordered) == 0 {
		return nil, domain.WrapError(domain.ErrNoViableOutfit, "compose outfit", fmt.Errorf("no selected identifier matched the catalog"))
	}

	return &domain.Composition{
		Occasion:    occasion,
		Preferences: preferences,
		Items:       ordered,
		DroppedIDs:  dropped,
		CatalogSize: len(snapshot),
	}, nil
}

// History append is best-effort; a logging failure must not fail a
// composition that already succeeded.
func (uc *ComposeOutfitUseCase) appendHistory(ctx context.Context, occasion, preferences string, composition *domain.Composition, composeErr error) {
	record := &domain.UserRequest{
		ID:          uuid.NewString(),
		Occasion:    occasion,
		Preferences: preferences,
		SelectedIDs: []string{},
		Succeeded:   composeErr == nil,
		CreatedAt:   time.Now().UTC(),
	}
	if composition != nil {
		for _, item := range composition.Items {
			record.SelectedIDs = append(record.SelectedIDs, item.ID)
		}
	}
	if err := uc.requests.Append(ctx, record); err != nil {
		slog.Warn("request_history_append_failed", "error", err)
	}
}
