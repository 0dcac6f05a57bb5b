package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"jobboard/internal/database"
	"jobboard/internal/domain/posting"
	"jobboard/internal/geo"
	"jobboard/internal/search"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PostingRepository interface {
	Count(ctx context.Context, p search.Predicate) (int, error)
	Find(ctx context.Context, p search.Predicate, offset, limit int) ([]posting.Listing, error)
	GetDetail(ctx context.Context, id uuid.UUID) (posting.Detail, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Insert(ctx context.Context, items []posting.Posting) error
}

type PostgresPostingRepository struct {
	db database.DB
}

func NewPostgresPostingRepository(db database.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

const postingFrom = `FROM job_postings jp JOIN companies c ON c.company_id = jp.company_id`

func (r *PostgresPostingRepository) Count(ctx context.Context, p search.Predicate) (int, error) {
	args := &sqlArgs{}
	where, err := compileWhere(p, args)
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) `+postingFrom+` WHERE `+where, args.values...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Find returns one window of matching postings, newest first. Ties on
// created_at are broken by id so pages never overlap.
func (r *PostgresPostingRepository) Find(ctx context.Context, p search.Predicate, offset, limit int) ([]posting.Listing, error) {
	if limit <= 0 {
		limit = search.PageSize
	}
	if offset < 0 {
		offset = 0
	}

	args := &sqlArgs{}
	where, err := compileWhere(p, args)
	if err != nil {
		return nil, err
	}
	lim := args.add(limit)
	off := args.add(offset)

	rows, err := r.db.Query(ctx,
		`SELECT jp.job_posting_id, jp.job_posting_title, jp.city, jp.district, jp.summary, jp.deadline, jp.created_at,
		        c.company_name, c.company_logo
		 `+postingFrom+`
		 WHERE `+where+`
		 ORDER BY jp.created_at DESC, jp.job_posting_id ASC
		 LIMIT `+lim+` OFFSET `+off,
		args.values...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]posting.Listing, 0, limit)
	for rows.Next() {
		var l posting.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.City, &l.District, &l.Summary, &l.Deadline, &l.CreatedAt, &l.CompanyName, &l.CompanyLogo); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresPostingRepository) GetDetail(ctx context.Context, id uuid.UUID) (posting.Detail, error) {
	var (
		d   posting.Detail
		loc []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT jp.job_posting_id, jp.job_posting_title, jp.address, jp.city, jp.district, jp.town, ST_AsBinary(jp.location),
		        jp.work_time_start, jp.work_time_end, jp.posting_type, jp.employment_type, jp.work_experience,
		        jp.job_keyword_main, jp.job_keyword_sub, jp.education, jp.number_of_positions, jp.company_id, jp.deadline,
		        jp.time_discussion, jp.day_discussion, jp.work_day, jp.salary_type, jp.salary, jp.summary, jp.content,
		        jp.created_at, jp.updated_at, c.company_name, c.company_logo
		 `+postingFrom+`
		 WHERE jp.job_posting_id = $1`,
		id,
	).Scan(
		&d.ID, &d.Title, &d.Address, &d.City, &d.District, &d.Town, &loc,
		&d.WorkTimeStart, &d.WorkTimeEnd, &d.PostingType, &d.EmploymentType, &d.WorkExperience,
		&d.JobKeywordMain, &d.JobKeywordSub, &d.Education, &d.NumberOfPositions, &d.CompanyID, &d.Deadline,
		&d.TimeDiscussion, &d.DayDiscussion, &d.WorkDay, &d.SalaryType, &d.Salary, &d.Summary, &d.Content,
		&d.CreatedAt, &d.UpdatedAt, &d.CompanyName, &d.CompanyLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return posting.Detail{}, posting.ErrNotFound
		}
		return posting.Detail{}, err
	}

	p, err := geo.UnmarshalPoint(loc)
	if err != nil {
		return posting.Detail{}, fmt.Errorf("decode posting location: %w", err)
	}
	d.Location = p
	return d, nil
}

func (r *PostgresPostingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM job_postings WHERE job_posting_id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Insert writes items in one transaction. Missing ids are generated.
func (r *PostgresPostingRepository) Insert(ctx context.Context, items []posting.Posting) error {
	if len(items) == 0 {
		return nil
	}

	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for i := range items {
			it := &items[i]
			if it.ID == uuid.Nil {
				it.ID = uuid.New()
			}
			loc, err := geo.MarshalWKB(it.Location)
			if err != nil {
				return fmt.Errorf("encode posting %s location: %w", it.ID, err)
			}
			workDay := it.WorkDay
			if workDay == nil {
				workDay = []string{}
			}
			keywordSub := it.JobKeywordSub
			if keywordSub == nil {
				keywordSub = []string{}
			}

			_, err = tx.Exec(ctx,
				`INSERT INTO job_postings (
					job_posting_id, job_posting_title, address, city, district, town, location,
					work_time_start, work_time_end, posting_type, employment_type, work_experience,
					job_keyword_main, job_keyword_sub, number_of_positions, company_id, education, deadline,
					time_discussion, day_discussion, work_day, salary_type, salary, summary, content
				) VALUES (
					$1, $2, $3, $4, $5, $6, ST_SetSRID(ST_GeomFromWKB($7), `+strconv.Itoa(geo.SRID)+`),
					$8, $9, $10, $11, $12,
					$13, $14, $15, $16, $17, $18,
					$19, $20, $21, $22, $23, $24, $25
				)`,
				it.ID, it.Title, it.Address, it.City, it.District, it.Town, loc,
				it.WorkTimeStart, it.WorkTimeEnd, it.PostingType, it.EmploymentType, it.WorkExperience,
				it.JobKeywordMain, keywordSub, it.NumberOfPositions, it.CompanyID, it.Education, it.Deadline,
				it.TimeDiscussion, it.DayDiscussion, workDay, it.SalaryType, it.Salary, it.Summary, it.Content,
			)
			if err != nil {
				return fmt.Errorf("insert posting %s: %w", it.ID, err)
			}
		}
		return nil
	})
}
