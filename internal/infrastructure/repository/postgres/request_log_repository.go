package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

// RequestLogRepository is the append-only composition history.
type RequestLogRepository struct {
	db *sql.DB
}

func NewRequestLogRepository(db *sql.DB) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

func (r *RequestLogRepository) Append(ctx context.Context, record *domain.UserRequest) error {
	selectedJSON, err := json.Marshal(record.SelectedIDs)
	if err != nil {
		return fmt.Errorf("marshal selected ids: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO user_requests (id, occasion, preferences, selected_ids, succeeded, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, record.ID, record.Occasion, record.Preferences, selectedJSON, record.Succeeded, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user request: %w", err)
	}
	return nil
}

func (r *RequestLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.UserRequest, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, occasion, preferences, selected_ids, succeeded, created_at
FROM user_requests
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query user requests: %w", err)
	}
	defer rows.Close()

	records := make([]domain.UserRequest, 0)
	for rows.Next() {
		var record domain.UserRequest
		var selectedRaw []byte
		if err := rows.Scan(&record.ID, &record.Occasion, &record.Preferences, &selectedRaw, &record.Succeeded, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user request: %w", err)
		}
		if err := json.Unmarshal(selectedRaw, &record.SelectedIDs); err != nil {
			return nil, fmt.Errorf("unmarshal selected ids: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user requests: %w", err)
	}
	return records, nil
}
