package usecase

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/config"
	"jobboard/internal/domain/posting"
	"jobboard/internal/repository"
	"jobboard/internal/search"

	"github.com/google/uuid"
)

type SearchItem struct {
	posting.Listing
	IsBookmarked bool
}

type SearchResult struct {
	Items []SearchItem
	Page  search.Page
}

type SearchUsecase interface {
	// Search runs one request through parse, compile, region, execute,
	// annotate and paginate. viewer is uuid.Nil for anonymous callers.
	Search(ctx context.Context, raw search.Params, viewer uuid.UUID) (SearchResult, error)
}

type Search struct {
	postings  repository.PostingRepository
	districts repository.DistrictRepository
	bookmarks BookmarkLookup
	cfg       config.SearchConfig
	logger    *log.Logger
}

func NewSearchUsecase(postings repository.PostingRepository, districts repository.DistrictRepository, bookmarks BookmarkLookup, cfg config.SearchConfig, logger *log.Logger) *Search {
	return &Search{postings: postings, districts: districts, bookmarks: bookmarks, cfg: cfg, logger: logger}
}

// Search returns a *search.ValidationError unchanged when raw is malformed.
// Any store failure fails the whole request; no partial result is returned.
func (u *Search) Search(ctx context.Context, raw search.Params, viewer uuid.UUID) (SearchResult, error) {
	q, err := search.Parse(raw)
	if err != nil {
		return SearchResult{}, err
	}

	p := search.Compile(q)

	if q.HasRegion() {
		f := q.RegionFilter(u.cfg.RegionMatch == config.RegionMatchAll)
		matched, err := u.districts.FindByCodes(ctx, f)
		if err != nil {
			return SearchResult{}, u.internal("resolve districts", err)
		}
		p = p.Constrain(f, matched, u.cfg.BufferMeters)
		if p.None && u.logger != nil {
			u.logger.Printf("[Search] region filter resolved to nothing city=%v district=%v town=%v matched=%d",
				q.CityNos, q.DistrictNos, q.TownNos, len(matched))
		}
	}

	total := 0
	if !p.None {
		total, err = u.postings.Count(ctx, p)
		if err != nil {
			return SearchResult{}, u.internal("count postings", err)
		}
	}
	page := search.Window(q.Page, total)

	listings := []posting.Listing{}
	if total > 0 {
		listings, err = u.postings.Find(ctx, p, page.Offset, page.Limit)
		if err != nil {
			return SearchResult{}, u.internal("find postings", err)
		}
	}

	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	marks, err := AnnotateBookmarks(ctx, u.bookmarks, viewer, ids)
	if err != nil {
		return SearchResult{}, u.internal("annotate bookmarks", err)
	}

	items := make([]SearchItem, 0, len(listings))
	for i, l := range listings {
		items = append(items, SearchItem{Listing: l, IsBookmarked: marks[i]})
	}

	return SearchResult{Items: items, Page: page}, nil
}

func (u *Search) internal(step string, err error) error {
	if u.logger != nil {
		u.logger.Printf("[Search] %s failed: %v", step, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
