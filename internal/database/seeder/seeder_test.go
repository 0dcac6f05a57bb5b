package seeder

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"jobboard/internal/domain/region"
	"jobboard/internal/geo"
	"jobboard/internal/repository/memory"
	"jobboard/internal/search"

	"github.com/paulmach/orb"
)

func newEnv() (Env, *memory.Postings, *memory.Districts) {
	companies := memory.NewCompanies()
	districts := memory.NewDistricts()
	postings := memory.NewPostings(companies, districts)
	return Env{Companies: companies, Districts: districts, Postings: postings}, postings, districts
}

func TestPostingsSeeder_PlacesPostingsInsideDistricts(t *testing.T) {
	env, postings, districts := newEnv()
	ctx := context.Background()

	square := orb.MultiPolygon{{{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}, {0, 0}}}}
	// U shape: the centroid falls in the notch
	u := orb.MultiPolygon{{{{5000, 0}, {8000, 0}, {8000, 3000}, {7000, 3000}, {7000, 1000}, {6000, 1000}, {6000, 3000}, {5000, 3000}, {5000, 0}}}}
	if _, err := districts.Upsert(ctx, []region.District{
		{CityNo: "11", CityName: "서울특별시", DistrictNo: "11680", DistrictName: "강남구", TownNo: "A", TownName: "역삼동", Geometry: square},
		{CityNo: "26", CityName: "부산광역시", DistrictNo: "26350", DistrictName: "해운대구", TownNo: "B", TownName: "우동", Geometry: u},
	}); err != nil {
		t.Fatalf("seed districts: %v", err)
	}

	now := func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	r := Runner{Seeders: []Seeder{CompaniesSeeder{}, &PostingsSeeder{Count: 250, Rand: rand.New(rand.NewSource(7)), Now: now}}}
	if err := r.Run(ctx, env); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	total, err := postings.Count(ctx, search.Predicate{})
	if err != nil || total != 250 {
		t.Fatalf("expected 250 postings, got %d %v", total, err)
	}

	items, _ := postings.Find(ctx, search.Predicate{}, 0, 250)
	for _, l := range items {
		d, err := postings.GetDetail(ctx, l.ID)
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		var area orb.MultiPolygon
		switch d.Town {
		case "역삼동":
			area = square
			if d.City != "서울특별시" || d.District != "강남구" {
				t.Fatalf("names do not match district: %+v", d.Posting)
			}
		case "우동":
			area = u
			if d.City != "부산광역시" || d.District != "해운대구" {
				t.Fatalf("names do not match district: %+v", d.Posting)
			}
		default:
			t.Fatalf("unexpected town %q", d.Town)
		}
		if geo.Distance(area, d.Location) != 0 {
			t.Fatalf("posting %s at %v is outside %s", d.ID, d.Location, d.Town)
		}
		if d.Deadline.Before(now()) || d.Salary < 2000000 || d.Salary > 5000000 {
			t.Fatalf("unexpected generated values %+v", d.Posting)
		}
		if d.CompanyName != DefaultCompanyName {
			t.Fatalf("unexpected company %q", d.CompanyName)
		}
	}
}

func TestPostingsSeeder_NoDistricts(t *testing.T) {
	env, _, _ := newEnv()

	err := (&PostingsSeeder{Count: 1}).Run(context.Background(), env)
	if !errors.Is(err, errNoDistricts) {
		t.Fatalf("expected errNoDistricts, got %v", err)
	}
}

func TestRunner_IncompleteEnv(t *testing.T) {
	if err := (Runner{Seeders: Defaults(1)}).Run(context.Background(), Env{}); err == nil {
		t.Fatalf("expected error for empty env")
	}
}
