package repo

import (
	"context"

	dom "github.com/Wagner-V1eira/MinhaGibiteca-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CollectionRepo provides persistence for collection entries. Every query
// carries the owning user ID in its predicate, so rows of other users are
// unreachable at the SQL level.
type CollectionRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]dom.CollectionEntry, error)
	Create(ctx context.Context, e dom.CollectionEntry) (dom.CollectionEntry, error)
	Delete(ctx context.Context, userID int64, externalID string) (int64, error)
	UpdateStatusNote(ctx context.Context, userID int64, externalID, status string, note *string) (int64, error)
	GetByExternalID(ctx context.Context, userID int64, externalID string) (dom.CollectionEntry, error)
}

// PGCollectionRepo implements CollectionRepo with Postgres.
type PGCollectionRepo struct {
	db *pgxpool.Pool
}

// NewPGCollectionRepo returns a new PGCollectionRepo.
func NewPGCollectionRepo(db *pgxpool.Pool) *PGCollectionRepo {
	return &PGCollectionRepo{db: db}
}

func (r *PGCollectionRepo) ListByUser(ctx context.Context, userID int64) ([]dom.CollectionEntry, error) {
	query := `
		SELECT id, user_id, external_id, title, number, image_url, created_at, status, note
		FROM collections WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.CollectionEntry
	for rows.Next() {
		var e dom.CollectionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ExternalID, &e.Title, &e.Number,
			&e.ImageURL, &e.CreatedAt, &e.Status, &e.Note); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Create inserts a new entry and returns it. A duplicate (user_id,
// external_id) pair fails at the unique constraint with a 23505 error,
// which also settles concurrent duplicate adds.
func (r *PGCollectionRepo) Create(ctx context.Context, e dom.CollectionEntry) (dom.CollectionEntry, error) {
	query := `
		INSERT INTO collections (user_id, external_id, title, number, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, external_id, title, number, image_url, created_at, status, note`
	var out dom.CollectionEntry
	err := r.db.QueryRow(ctx, query, e.UserID, e.ExternalID, e.Title, e.Number, e.ImageURL, e.Status).Scan(
		&out.ID, &out.UserID, &out.ExternalID, &out.Title, &out.Number,
		&out.ImageURL, &out.CreatedAt, &out.Status, &out.Note,
	)
	return out, err
}

// Delete removes the user's entry and reports how many rows went away.
func (r *PGCollectionRepo) Delete(ctx context.Context, userID int64, externalID string) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM collections WHERE user_id = $1 AND external_id = $2`,
		userID, externalID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// UpdateStatusNote replaces status and note on the user's entry and reports
// affected rows. Callers pass the resolved values; replace semantics live
// in the service layer.
func (r *PGCollectionRepo) UpdateStatusNote(ctx context.Context, userID int64, externalID, status string, note *string) (int64, error) {
	ct, err := r.db.Exec(ctx,
		`UPDATE collections SET status = $3, note = $4 WHERE user_id = $1 AND external_id = $2`,
		userID, externalID, status, note)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// GetByExternalID returns the user's entry for the catalog ID. pgx.ErrNoRows
// if absent or owned by another user.
func (r *PGCollectionRepo) GetByExternalID(ctx context.Context, userID int64, externalID string) (dom.CollectionEntry, error) {
	query := `
		SELECT id, user_id, external_id, title, number, image_url, created_at, status, note
		FROM collections WHERE user_id = $1 AND external_id = $2`
	var e dom.CollectionEntry
	err := r.db.QueryRow(ctx, query, userID, externalID).Scan(
		&e.ID, &e.UserID, &e.ExternalID, &e.Title, &e.Number,
		&e.ImageURL, &e.CreatedAt, &e.Status, &e.Note,
	)
	return e, err
}
