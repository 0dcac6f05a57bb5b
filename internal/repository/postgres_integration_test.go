package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/region"
	"jobboard/internal/search"
	"jobboard/migrations"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// openTestDB connects to the PostGIS database named by JOBBOARD_TEST_DB_*
// and resets its tables. Tests are skipped when it is not configured.
func openTestDB(t *testing.T) database.DB {
	t.Helper()

	host := os.Getenv("JOBBOARD_TEST_DB_HOST")
	if host == "" {
		t.Skip("JOBBOARD_TEST_DB_HOST not set")
	}
	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     envOr("JOBBOARD_TEST_DB_PORT", "5432"),
		DBName:     envOr("JOBBOARD_TEST_DB_NAME", "jobboard_test"),
		DBUser:     envOr("JOBBOARD_TEST_DB_USER", "postgres"),
		DBPassword: os.Getenv("JOBBOARD_TEST_DB_PASSWORD"),
		DBSSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, `TRUNCATE job_posting_bookmarks, job_postings, companies, districts RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func squareAt(x, y, size float64) orb.MultiPolygon {
	return orb.MultiPolygon{{{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}}}
}

func TestPostgres_GeofenceSearchAndBookmarks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	districts := NewPostgresDistrictRepository(db)
	postings := NewPostgresPostingRepository(db)
	bookmarks := NewPostgresBookmarkRepository(db)
	companies := NewPostgresCompanyRepository(db)

	const x, y = 955000.0, 1950000.0
	if _, err := districts.Upsert(ctx, []region.District{{
		CityNo: "11", CityName: "서울특별시",
		DistrictNo: "11680", DistrictName: "강남구",
		TownNo: "T1", TownName: "역삼동",
		Geometry: squareAt(x, y, 1000),
	}}); err != nil {
		t.Fatalf("upsert districts: %v", err)
	}

	companyID, err := companies.Upsert(ctx, posting.Company{Name: "Acme Coffee"})
	if err != nil {
		t.Fatalf("upsert company: %v", err)
	}

	base := posting.Posting{
		City: "서울특별시", District: "강남구", Town: "역삼동",
		WorkTimeStart: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		WorkTimeEnd:   time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC),
		PostingType:   "기업", EmploymentType: "정규직", WorkExperience: "무관",
		JobKeywordMain: "외식·음료", JobKeywordSub: []string{"바리스타"},
		Education: "고졸", NumberOfPositions: 1, CompanyID: companyID,
		Deadline: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		WorkDay:  []string{"월", "화"}, SalaryType: "시급", Salary: 10030, Summary: "summary",
	}
	near, far := base, base
	near.ID, near.Title, near.Location = uuid.New(), "near", orb.Point{x + 3000, y + 500}
	far.ID, far.Title, far.Location = uuid.New(), "far", orb.Point{x + 6000, y + 500}
	if err := postings.Insert(ctx, []posting.Posting{near, far}); err != nil {
		t.Fatalf("insert postings: %v", err)
	}

	q, err := search.Parse(search.Params{"town_no": {"T1"}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := q.RegionFilter(false)
	matched, err := districts.FindByCodes(ctx, f)
	if err != nil {
		t.Fatalf("find districts: %v", err)
	}
	p := search.Compile(q).Constrain(f, matched, 3000)

	n, err := postings.Count(ctx, p)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 posting inside geofence, got %d", n)
	}
	list, err := postings.Find(ctx, p, 0, search.PageSize)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(list) != 1 || list[0].ID != near.ID || list[0].CompanyName != "Acme Coffee" {
		t.Fatalf("unexpected results %+v", list)
	}

	user := uuid.New()
	created, err := bookmarks.Add(ctx, user, near.ID)
	if err != nil || !created {
		t.Fatalf("expected bookmark created, got %v %v", created, err)
	}
	created, err = bookmarks.Add(ctx, user, near.ID)
	if err != nil || created {
		t.Fatalf("expected existing bookmark, got %v %v", created, err)
	}
	if _, err := bookmarks.Add(ctx, user, uuid.New()); err != posting.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing posting, got %v", err)
	}

	marks, err := bookmarks.BookmarkedAmong(ctx, user, []uuid.UUID{near.ID, far.ID})
	if err != nil {
		t.Fatalf("bookmarked among: %v", err)
	}
	if !marks[near.ID] || marks[far.ID] {
		t.Fatalf("unexpected marks %v", marks)
	}

	removed, err := bookmarks.Remove(ctx, user, near.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v %v", removed, err)
	}

	rows, err := districts.ListHierarchyRows(ctx)
	if err != nil || len(rows) != 1 || rows[0].TownNo != "T1" {
		t.Fatalf("unexpected hierarchy rows %+v %v", rows, err)
	}
}
