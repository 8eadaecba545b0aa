package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

type WardrobeRepository struct {
	db *sql.DB
}

func NewWardrobeRepository(db *sql.DB) *WardrobeRepository {
	return &WardrobeRepository{db: db}
}

func (r *WardrobeRepository) CreateItem(ctx context.Context, item *domain.ClothingItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO clothing_items (id, name, image_path, mime_type, tag_status, tag_error, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`, item.ID, item.Name, item.ImagePath, item.MimeType, string(item.TagStatus), item.TagError, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert clothing item: %w", err)
	}

	if err := insertTags(ctx, tx, item.ID, item.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create tx: %w", err)
	}
	return nil
}

func (r *WardrobeRepository) GetItem(ctx context.Context, id string) (*domain.ClothingItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, image_path, mime_type, tag_status, tag_error, created_at, updated_at
FROM clothing_items
WHERE id = $1
`, id)

	var item domain.ClothingItem
	var status string
	err := row.Scan(&item.ID, &item.Name, &item.ImagePath, &item.MimeType, &status, &item.TagError, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrItemNotFound, "get item", fmt.Errorf("id=%s", id))
		}
		return nil, fmt.Errorf("scan clothing item: %w", err)
	}
	item.TagStatus = domain.TagStatus(status)

	tags, err := r.loadTags(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Tags = tags
	return &item, nil
}

func (r *WardrobeRepository) ListItems(ctx context.Context) ([]domain.ClothingItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, image_path, mime_type, tag_status, tag_error, created_at, updated_at
FROM clothing_items
ORDER BY created_at ASC, id ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query clothing items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ClothingItem, 0)
	for rows.Next() {
		var item domain.ClothingItem
		var status string
		if err := rows.Scan(&item.ID, &item.Name, &item.ImagePath, &item.MimeType, &status, &item.TagError, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan clothing item: %w", err)
		}
		item.TagStatus = domain.TagStatus(status)
		item.Tags = domain.TagSet{}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clothing items: %w", err)
	}

	if err := r.attachAllTags(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *WardrobeRepository) ReplaceTags(ctx context.Context, id string, tags domain.TagSet, status domain.TagStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tags tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx, `
UPDATE clothing_items
SET tag_status = $2, tag_error = '', updated_at = $3
WHERE id = $1
`, id, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update tag status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.WrapError(domain.ErrItemNotFound, "replace tags", fmt.Errorf("id=%s", id))
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = $1`, id); err != nil {
		return fmt.Errorf("clear tags: %w", err)
	}
	if err := insertTags(ctx, tx, id, tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tags tx: %w", err)
	}
	return nil
}

func (r *WardrobeRepository) SetTagStatus(ctx context.Context, id string, status domain.TagStatus, reason string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE clothing_items
SET tag_status = $2, tag_error = $3, updated_at = $4
WHERE id = $1
`, id, string(status), reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update tag status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return domain.WrapError(domain.ErrItemNotFound, "set tag status", fmt.Errorf("id=%s", id))
	}
	return nil
}

// DeleteItem enforces the reject-while-referenced policy: an item that is
// part of any saved outfit cannot be removed.
func (r *WardrobeRepository) DeleteItem(ctx context.Context, id string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var imagePath string
	err = tx.QueryRowContext(ctx, `SELECT image_path FROM clothing_items WHERE id = $1`, id).Scan(&imagePath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.WrapError(domain.ErrItemNotFound, "delete item", fmt.Errorf("id=%s", id))
		}
		return "", fmt.Errorf("lookup clothing item: %w", err)
	}

	var referenced bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM outfit_items WHERE item_id = $1)`, id).Scan(&referenced)
	if err != nil {
		return "", fmt.Errorf("check outfit references: %w", err)
	}
	if referenced {
		return "", domain.WrapError(domain.ErrItemReferenced, "delete item", fmt.Errorf("id=%s", id))
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = $1`, id); err != nil {
		return "", fmt.Errorf("delete clothing item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit delete tx: %w", err)
	}
	return imagePath, nil
}

func (r *WardrobeRepository) loadTags(ctx context.Context, itemID string) (domain.TagSet, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT dimension, value FROM item_tags WHERE item_id = $1 ORDER BY id ASC
`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := domain.TagSet{}
	for rows.Next() {
		var dimension, value string
		if err := rows.Scan(&dimension, &value); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags[dimension] = append(tags[dimension], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags, nil
}

func (r *WardrobeRepository) attachAllTags(ctx context.Context, items []domain.ClothingItem) error {
	if len(items) == 0 {
		return nil
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT item_id, dimension, value FROM item_tags ORDER BY id ASC
`)
	if err != nil {
		return fmt.Errorf("query all tags: %w", err)
	}
	defer rows.Close()

	byItem := make(map[string]domain.TagSet, len(items))
	for idx := range items {
		byItem[items[idx].ID] = items[idx].Tags
	}
	for rows.Next() {
		var itemID, dimension, value string
		if err := rows.Scan(&itemID, &dimension, &value); err != nil {
			return fmt.Errorf("scan tag: %w", err)
		}
		if tags, ok := byItem[itemID]; ok {
			tags[dimension] = append(tags[dimension], value)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate tags: %w", err)
	}
	return nil
}

func insertTags(ctx context.Context, tx *sql.Tx, itemID string, tags domain.TagSet) error {
	for dimension, values := range tags {
		for _, value := range values {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO item_tags (item_id, dimension, value) VALUES ($1,$2,$3)
`, itemID, dimension, value); err != nil {
				return fmt.Errorf("insert tag %s=%s: %w", dimension, value, err)
			}
		}
	}
	return nil
}
