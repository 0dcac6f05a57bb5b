package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/bookmark"
	"jobboard/internal/domain/posting"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgForeignKeyViolation = "23503"

type BookmarkRepository interface {
	// BookmarkedAmong answers, in a single query, which of postingIDs userID
	// has bookmarked. Absent ids map to false.
	BookmarkedAmong(ctx context.Context, userID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Exists(ctx context.Context, userID, postingID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, postingID uuid.UUID) (bool, error)
	Remove(ctx context.Context, userID, postingID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]bookmark.Entry, error)
}

type PostgresBookmarkRepository struct {
	db database.DB
}

func NewPostgresBookmarkRepository(db database.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) BookmarkedAmong(ctx context.Context, userID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	ids := make([]string, 0, len(postingIDs))
	for _, id := range postingIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_posting_id
		 FROM job_posting_bookmarks
		 WHERE user_id = $1 AND job_posting_id = ANY($2::uuid[])`,
		userID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]bool, len(postingIDs))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBookmarkRepository) Exists(ctx context.Context, userID, postingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_posting_bookmarks WHERE user_id = $1 AND job_posting_id = $2)`,
		userID, postingID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Add reports created=false when the pair already existed.
func (r *PostgresBookmarkRepository) Add(ctx context.Context, userID, postingID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`INSERT INTO job_posting_bookmarks (user_id, job_posting_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, job_posting_id) DO NOTHING`,
		userID, postingID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return false, posting.ErrNotFound
		}
		return false, err
	}
	return n == 1, nil
}

func (r *PostgresBookmarkRepository) Remove(ctx context.Context, userID, postingID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx,
		`DELETE FROM job_posting_bookmarks WHERE user_id = $1 AND job_posting_id = $2`,
		userID, postingID,
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresBookmarkRepository) List(ctx context.Context, userID uuid.UUID) ([]bookmark.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT b.id, b.user_id, b.job_posting_id, b.created_at,
		        jp.job_posting_title, jp.summary, jp.deadline, c.company_name, c.company_logo
		 FROM job_posting_bookmarks b
		 JOIN job_postings jp ON jp.job_posting_id = b.job_posting_id
		 JOIN companies c ON c.company_id = jp.company_id
		 WHERE b.user_id = $1
		 ORDER BY b.created_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]bookmark.Entry, 0)
	for rows.Next() {
		var e bookmark.Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.PostingID, &e.CreatedAt, &e.Title, &e.Summary, &e.Deadline, &e.CompanyName, &e.CompanyLogo); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
