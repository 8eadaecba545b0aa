package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

type OutfitRepository struct {
	db *sql.DB
}

func NewOutfitRepository(db *sql.DB) *OutfitRepository {
	return &OutfitRepository{db: db}
}

// CreateOutfit verifies each referenced item inside the insert transaction,
// so a concurrent delete cannot leave a dangling reference.
func (r *OutfitRepository) CreateOutfit(ctx context.Context, outfit *domain.Outfit) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin outfit tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO outfits (id, name, occasion, created_at) VALUES ($1,$2,$3,$4)
`, outfit.ID, outfit.Name, outfit.Occasion, outfit.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outfit: %w", err)
	}

	for _, member := range outfit.Items {
		var exists bool
		err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clothing_items WHERE id = $1)`, member.ItemID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check item %s: %w", member.ItemID, err)
		}
		if !exists {
			return domain.WrapError(domain.ErrItemNotFound, "create outfit", fmt.Errorf("id=%s", member.ItemID))
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO outfit_items (outfit_id, item_id, position) VALUES ($1,$2,$3)
`, outfit.ID, member.ItemID, member.Position); err != nil {
			return fmt.Errorf("insert outfit item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit outfit tx: %w", err)
	}
	return nil
}

func (r *OutfitRepository) GetOutfit(ctx context.Context, id string) (*domain.Outfit, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, occasion, created_at FROM outfits WHERE id = $1
`, id)

	var outfit domain.Outfit
	if err := row.Scan(&outfit.ID, &outfit.Name, &outfit.Occasion, &outfit.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrOutfitNotFound, "get outfit", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan outfit: %w", err)
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	outfit.Items = items
	return &outfit, nil
}

func (r *OutfitRepository) ListOutfits(ctx context.Context) ([]domain.Outfit, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, occasion, created_at FROM outfits ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query outfits: %w", err)
	}
	defer rows.Close()

	outfits := make([]domain.Outfit, 0)
	for rows.Next() {
		var outfit domain.Outfit
		if err := rows.Scan(&outfit.ID, &outfit.Name, &outfit.Occasion, &outfit.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outfit: %w", err)
		}
		outfits = append(outfits, outfit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfits: %w", err)
	}

	for idx := range outfits {
		items, err := r.loadItems(ctx, outfits[idx].ID)
		if err != nil {
			return nil, err
		}
		outfits[idx].Items = items
	}
	return outfits, nil
}

func (r *OutfitRepository) loadItems(ctx context.Context, outfitID string) ([]domain.OutfitItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT oi.item_id, oi.position, c.name, c.image_path
FROM outfit_items oi
JOIN clothing_items c ON c.id = oi.item_id
WHERE oi.outfit_id = $1
ORDER BY oi.position ASC
`, outfitID)
	if err != nil {
		return nil, fmt.Errorf("query outfit items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OutfitItem, 0)
	for rows.Next() {
		var item domain.OutfitItem
		if err := rows.Scan(&item.ItemID, &item.Position, &item.Name, &item.ImagePath); err != nil {
			return nil, fmt.Errorf("scan outfit item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outfit items: %w", err)
	}
	return items, nil
}
