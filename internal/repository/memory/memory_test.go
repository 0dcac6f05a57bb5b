package memory

import (
	"context"
	"testing"
	"time"

	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/region"
	"jobboard/internal/repository"
	"jobboard/internal/search"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

var (
	_ repository.PostingRepository  = (*Postings)(nil)
	_ repository.DistrictRepository = (*Districts)(nil)
	_ repository.BookmarkRepository = (*Bookmarks)(nil)
	_ repository.CompanyRepository  = (*Companies)(nil)
)

func TestPostings_OrderAndWindow(t *testing.T) {
	ctx := context.Background()
	companies := NewCompanies()
	cid, _ := companies.Upsert(ctx, posting.Company{Name: "acme"})
	ps := NewPostings(companies, NewDistricts())

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var items []posting.Posting
	for i := 0; i < 25; i++ {
		items = append(items, posting.Posting{
			ID:        uuid.New(),
			Title:     "p",
			CompanyID: cid,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	if err := ps.Insert(ctx, items); err != nil {
		t.Fatalf("insert: %v", err)
	}

	first, _ := ps.Find(ctx, search.Predicate{}, 0, search.PageSize)
	second, _ := ps.Find(ctx, search.Predicate{}, search.PageSize, search.PageSize)
	if len(first) != 20 || len(second) != 5 {
		t.Fatalf("unexpected window sizes %d %d", len(first), len(second))
	}
	if !first[0].CreatedAt.Equal(base.Add(24 * time.Hour)) {
		t.Fatalf("expected newest first, got %s", first[0].CreatedAt)
	}
	if first[0].CompanyName != "acme" {
		t.Fatalf("expected company joined, got %q", first[0].CompanyName)
	}
}

func TestPostings_FenceUsesDistrictGeometry(t *testing.T) {
	ctx := context.Background()
	districts := NewDistricts()
	_, _ = districts.Upsert(ctx, []region.District{{
		CityNo: "11", DistrictNo: "11680", TownNo: "T1",
		Geometry: orb.MultiPolygon{{{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}, {0, 0}}}},
	}})
	ps := NewPostings(NewCompanies(), districts)
	_ = ps.Insert(ctx, []posting.Posting{
		{Title: "near", Location: orb.Point{3000, 500}},
		{Title: "far", Location: orb.Point{6000, 500}},
	})

	f := search.RegionFilter{TownNos: []string{"T1"}}
	matched, _ := districts.FindByCodes(ctx, f)
	if len(matched) != 1 || matched[0].Geometry != nil {
		t.Fatalf("expected one district without geometry, got %+v", matched)
	}
	p := search.Predicate{}.Constrain(f, matched, 3000)

	got, _ := ps.Find(ctx, p, 0, search.PageSize)
	if len(got) != 1 || got[0].Title != "near" {
		t.Fatalf("unexpected fenced results %+v", got)
	}
}

func TestBookmarks_Toggle(t *testing.T) {
	ctx := context.Background()
	ps := NewPostings(NewCompanies(), NewDistricts())
	id := uuid.New()
	_ = ps.Insert(ctx, []posting.Posting{{ID: id}})
	bs := NewBookmarks(ps)
	user := uuid.New()

	if created, _ := bs.Add(ctx, user, id); !created {
		t.Fatalf("expected created")
	}
	if created, _ := bs.Add(ctx, user, id); created {
		t.Fatalf("expected existing")
	}
	if _, err := bs.Add(ctx, user, uuid.New()); err != posting.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if removed, _ := bs.Remove(ctx, user, id); !removed {
		t.Fatalf("expected removed")
	}
	if removed, _ := bs.Remove(ctx, user, id); removed {
		t.Fatalf("expected nothing to remove")
	}
}
