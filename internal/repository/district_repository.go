package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/region"
	"jobboard/internal/geo"
	"jobboard/internal/search"
)

type DistrictRepository interface {
	// FindByCodes returns the Districts selected by f, without geometry.
	FindByCodes(ctx context.Context, f search.RegionFilter) ([]region.District, error)
	ListHierarchyRows(ctx context.Context) ([]region.Row, error)
	Upsert(ctx context.Context, items []region.District) (int, error)
	Sample(ctx context.Context, n int) ([]region.District, error)
}

type PostgresDistrictRepository struct {
	db database.DB
}

func NewPostgresDistrictRepository(db database.DB) *PostgresDistrictRepository {
	return &PostgresDistrictRepository{db: db}
}

func (r *PostgresDistrictRepository) FindByCodes(ctx context.Context, f search.RegionFilter) ([]region.District, error) {
	if f.IsEmpty() {
		return []region.District{}, nil
	}

	args := &sqlArgs{}
	var conds []string
	add := func(col string, codes []string) {
		if len(codes) == 0 {
			return
		}
		conds = append(conds, col+" = ANY("+args.add(codes)+"::text[])")
	}
	add("city_no", f.CityNos)
	add("district_no", f.DistrictNos)
	add("emd_no", f.TownNos)

	op := " OR "
	if f.MatchAll {
		op = " AND "
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, city_no, city_name, district_no, district_name, emd_no, emd_name
		 FROM districts
		 WHERE `+strings.Join(conds, op)+`
		 ORDER BY id ASC`,
		args.values...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]region.District, 0)
	for rows.Next() {
		var d region.District
		if err := rows.Scan(&d.ID, &d.CityNo, &d.CityName, &d.DistrictNo, &d.DistrictName, &d.TownNo, &d.TownName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDistrictRepository) ListHierarchyRows(ctx context.Context) ([]region.Row, error) {
	rows, err := r.db.Query(ctx,
		`SELECT city_no, city_name, district_no, district_name, emd_no, emd_name
		 FROM districts
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]region.Row, 0)
	for rows.Next() {
		var row region.Row
		if err := rows.Scan(&row.CityNo, &row.CityName, &row.DistrictNo, &row.DistrictName, &row.TownNo, &row.TownName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert inserts or replaces districts keyed by town code, all in one
// transaction. It returns the number of rows written.
func (r *PostgresDistrictRepository) Upsert(ctx context.Context, items []region.District) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	written := 0
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, d := range items {
			wkb, err := geo.MarshalWKB(d.Geometry)
			if err != nil {
				return fmt.Errorf("encode district %s geometry: %w", d.TownNo, err)
			}
			n, err := tx.Exec(ctx,
				`INSERT INTO districts (city_no, city_name, district_no, district_name, emd_no, emd_name, geometry)
				 VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_GeomFromWKB($7), `+strconv.Itoa(geo.SRID)+`))
				 ON CONFLICT (emd_no) DO UPDATE SET
					city_no = EXCLUDED.city_no,
					city_name = EXCLUDED.city_name,
					district_no = EXCLUDED.district_no,
					district_name = EXCLUDED.district_name,
					emd_name = EXCLUDED.emd_name,
					geometry = EXCLUDED.geometry`,
				d.CityNo, d.CityName, d.DistrictNo, d.DistrictName, d.TownNo, d.TownName, wkb,
			)
			if err != nil {
				return fmt.Errorf("upsert district %s: %w", d.TownNo, err)
			}
			written += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// Sample returns up to n random districts with their geometry.
func (r *PostgresDistrictRepository) Sample(ctx context.Context, n int) ([]region.District, error) {
	if n <= 0 {
		return []region.District{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, city_no, city_name, district_no, district_name, emd_no, emd_name, ST_AsBinary(geometry)
		 FROM districts
		 ORDER BY random()
		 LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]region.District, 0, n)
	for rows.Next() {
		var (
			d   region.District
			wkb []byte
		)
		if err := rows.Scan(&d.ID, &d.CityNo, &d.CityName, &d.DistrictNo, &d.DistrictName, &d.TownNo, &d.TownName, &wkb); err != nil {
			return nil, err
		}
		mp, err := geo.UnmarshalMultiPolygon(wkb)
		if err != nil {
			return nil, fmt.Errorf("decode district %s geometry: %w", d.TownNo, err)
		}
		d.Geometry = mp
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
