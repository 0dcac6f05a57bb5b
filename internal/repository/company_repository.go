package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/posting"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	// Upsert creates the company or refreshes its logo, keyed by name.
	Upsert(ctx context.Context, c posting.Company) (uuid.UUID, error)
	List(ctx context.Context) ([]posting.Company, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) Upsert(ctx context.Context, c posting.Company) (uuid.UUID, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx,
		`INSERT INTO companies (company_id, company_name, company_logo)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (company_name) DO UPDATE SET company_logo = EXCLUDED.company_logo, updated_at = now()
		 RETURNING company_id`,
		c.ID, c.Name, c.Logo,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *PostgresCompanyRepository) List(ctx context.Context) ([]posting.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT company_id, company_name, company_logo, created_at FROM companies ORDER BY company_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Company, 0)
	for rows.Next() {
		var c posting.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Logo, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
