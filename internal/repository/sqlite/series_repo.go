package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/repository"
)

// sqliteSeriesRepository implements repository.SeriesRepository. The record is
// kept as a JSON document; id, owner and anchor date are also columns so they
// can be filtered and ordered on.
type sqliteSeriesRepository struct {
	db *sql.DB
}

func NewSQLiteSeriesRepository(db *sql.DB) repository.SeriesRepository {
	return &sqliteSeriesRepository{db: db}
}

// Upsert inserts or replaces the record. A conflicting id that belongs to a
// different owner is left untouched and reported as ErrDuplicate.
func (r *sqliteSeriesRepository) Upsert(ctx context.Context, rec domain.SeriesRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode series %s: %w", rec.ID, err)
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO workout_series (id, owner_id, anchor_date, body, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE
		SET anchor_date = excluded.anchor_date, body = excluded.body, updated_at = excluded.updated_at
		WHERE workout_series.owner_id = excluded.owner_id`,
		rec.ID, rec.OwnerID, rec.Date, string(body), mustTime(time.Now()),
	)
	if err != nil {
		return err
	}
	if err := checkRowsAffected(res, repository.ErrDuplicate); err != nil {
		return fmt.Errorf("series %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sqliteSeriesRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_series WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return checkRowsAffected(res, repository.ErrNotFound)
}

func (r *sqliteSeriesRepository) ListAll(ctx context.Context) ([]domain.SeriesRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT body FROM workout_series ORDER BY owner_id, anchor_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.SeriesRecord, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec domain.SeriesRecord
		if err := json.Unmarshal([]byte(body), &rec); err != nil {
			return nil, fmt.Errorf("decode series: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
