package contracts

import (
	"context"
	"encoding/json"
	"fmt"

	model "github.com/dmitrijs2005/rentkeeper/internal/contracts"
	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
)

// Repository is the snapshot store used by the state layer.
type Repository interface {
	// ReplaceAll drops the user's snapshot and stores list in its place.
	// Callers wanting atomicity run it on a transaction.
	ReplaceAll(ctx context.Context, userID string, list []model.Contract) error

	// ListByUser returns the user's snapshot in stored order.
	ListByUser(ctx context.Context, userID string) ([]model.Contract, error)

	// Upsert stores c, appending it when new and keeping its position otherwise.
	Upsert(ctx context.Context, userID string, c model.Contract) error

	// DeleteByID removes one contract. Missing ids are not an error.
	DeleteByID(ctx context.Context, userID, id string) error

	// DeleteByUser drops the user's whole snapshot.
	DeleteByUser(ctx context.Context, userID string) error
}

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func encode(c model.Contract) (string, error) {
	b, err := json.Marshal(model.ToRecord(c))
	if err != nil {
		return "", fmt.Errorf("failed to encode contract %s: %w", c.ID, err)
	}
	return string(b), nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, userID string, list []model.Contract) error {
	if err := r.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	for i, c := range list {
		rec, err := encode(c)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO contracts (id, user_id, position, record)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(user_id, id) DO UPDATE SET record = excluded.record
		`, c.ID, userID, i, rec)
		if err != nil {
			return fmt.Errorf("failed to insert contract %s: %w", c.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT record FROM contracts WHERE user_id = ? ORDER BY position, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select contracts: %w", err)
	}
	defer rows.Close()

	result := []model.Contract{}
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		var raw model.RawRecord
		if err := json.Unmarshal([]byte(rec), &raw); err != nil {
			return nil, fmt.Errorf("failed to decode contract row: %w", err)
		}
		result = append(result, model.Normalize(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contract rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, userID string, c model.Contract) error {
	rec, err := encode(c)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO contracts (id, user_id, position, record)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM contracts WHERE user_id = ?), ?)
		ON CONFLICT(user_id, id) DO UPDATE SET record = excluded.record
	`, c.ID, userID, userID, rec)
	if err != nil {
		return fmt.Errorf("failed to upsert contract %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, userID, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear contracts: %w", err)
	}
	return nil
}
