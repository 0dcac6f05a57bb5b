// Package memory implements the repositories in process. Search predicates
// are evaluated with search.Evaluator, so results match the Postgres store
// for the same data.
//
// It is test infrastructure: the usecase, route and seeder tests run against
// it so they need no database. Production wiring in internal/app always uses
// the Postgres repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"jobboard/internal/domain/bookmark"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/region"
	"jobboard/internal/search"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type Companies struct {
	mu    sync.RWMutex
	items map[uuid.UUID]posting.Company
}

func NewCompanies() *Companies {
	return &Companies{items: map[uuid.UUID]posting.Company{}}
}

func (s *Companies) Upsert(_ context.Context, c posting.Company) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.items {
		if existing.Name == c.Name {
			existing.Logo = c.Logo
			s.items[id] = existing
			return id, nil
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.items[c.ID] = c
	return c.ID, nil
}

func (s *Companies) List(context.Context) ([]posting.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]posting.Company, 0, len(s.items))
	for _, c := range s.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Companies) get(id uuid.UUID) (posting.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	return c, ok
}

type Districts struct {
	mu     sync.RWMutex
	nextID int64
	items  []region.District
}

func NewDistricts() *Districts {
	return &Districts{}
}

func (s *Districts) FindByCodes(_ context.Context, f search.RegionFilter) ([]region.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]region.District, 0)
	for _, d := range s.items {
		if f.Matches(d.Row()) {
			d.Geometry = nil
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Districts) ListHierarchyRows(context.Context) ([]region.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]region.Row, 0, len(s.items))
	for _, d := range s.items {
		out = append(out, d.Row())
	}
	return out, nil
}

func (s *Districts) Upsert(_ context.Context, items []region.District) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range items {
		replaced := false
		for i := range s.items {
			if s.items[i].TownNo == d.TownNo {
				d.ID = s.items[i].ID
				s.items[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			s.nextID++
			d.ID = s.nextID
			s.items = append(s.items, d)
		}
	}
	return len(items), nil
}

func (s *Districts) Sample(_ context.Context, n int) ([]region.District, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.items) {
		n = len(s.items)
	}
	if n < 0 {
		n = 0
	}
	out := make([]region.District, n)
	copy(out, s.items[:n])
	return out, nil
}

func (s *Districts) areas(ids []int64) []orb.MultiPolygon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	out := make([]orb.MultiPolygon, 0, len(ids))
	for _, d := range s.items {
		if _, ok := want[d.ID]; ok {
			out = append(out, d.Geometry)
		}
	}
	return out
}

type Postings struct {
	mu        sync.RWMutex
	items     []posting.Posting
	companies *Companies
	districts *Districts
}

func NewPostings(companies *Companies, districts *Districts) *Postings {
	return &Postings{companies: companies, districts: districts}
}

func (s *Postings) matching(p search.Predicate) []posting.Listing {
	var areas []orb.MultiPolygon
	if p.Fence != nil && s.districts != nil {
		areas = s.districts.areas(p.Fence.DistrictIDs)
	}
	e := search.NewEvaluator(p, areas)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]posting.Listing, 0)
	for _, it := range s.items {
		c, _ := s.company(it.CompanyID)
		if !e.Match(search.Candidate{Posting: it, CompanyName: c.Name}) {
			continue
		}
		out = append(out, posting.Listing{
			ID:          it.ID,
			Title:       it.Title,
			City:        it.City,
			District:    it.District,
			Summary:     it.Summary,
			Deadline:    it.Deadline,
			CompanyName: c.Name,
			CompanyLogo: c.Logo,
			CreatedAt:   it.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (s *Postings) company(id uuid.UUID) (posting.Company, bool) {
	if s.companies == nil {
		return posting.Company{}, false
	}
	return s.companies.get(id)
}

func (s *Postings) Count(_ context.Context, p search.Predicate) (int, error) {
	return len(s.matching(p)), nil
}

func (s *Postings) Find(_ context.Context, p search.Predicate, offset, limit int) ([]posting.Listing, error) {
	if limit <= 0 {
		limit = search.PageSize
	}
	if offset < 0 {
		offset = 0
	}
	return search.Slice(s.matching(p), search.Page{Offset: offset, Limit: limit}), nil
}

func (s *Postings) GetDetail(_ context.Context, id uuid.UUID) (posting.Detail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			c, _ := s.company(it.CompanyID)
			return posting.Detail{Posting: it, CompanyName: c.Name, CompanyLogo: c.Logo}, nil
		}
	}
	return posting.Detail{}, posting.ErrNotFound
}

func (s *Postings) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Postings) Insert(_ context.Context, items []posting.Posting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		if it.CreatedAt.IsZero() {
			it.CreatedAt = now
		}
		if it.UpdatedAt.IsZero() {
			it.UpdatedAt = it.CreatedAt
		}
		s.items = append(s.items, it)
	}
	return nil
}

type bookmarkKey struct {
	user    uuid.UUID
	posting uuid.UUID
}

// Bookmarks counts BookmarkedAmong calls so callers can assert on query volume.
type Bookmarks struct {
	mu       sync.RWMutex
	nextID   int64
	items    map[bookmarkKey]bookmark.Bookmark
	postings *Postings

	amongCalls atomic.Int64
}

func NewBookmarks(postings *Postings) *Bookmarks {
	return &Bookmarks{items: map[bookmarkKey]bookmark.Bookmark{}, postings: postings}
}

func (s *Bookmarks) AmongCalls() int64 {
	return s.amongCalls.Load()
}

func (s *Bookmarks) BookmarkedAmong(_ context.Context, userID uuid.UUID, postingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	s.amongCalls.Add(1)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]bool, len(postingIDs))
	for _, id := range postingIDs {
		if _, ok := s.items[bookmarkKey{user: userID, posting: id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (s *Bookmarks) Exists(_ context.Context, userID, postingID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[bookmarkKey{user: userID, posting: postingID}]
	return ok, nil
}

func (s *Bookmarks) Add(ctx context.Context, userID, postingID uuid.UUID) (bool, error) {
	if s.postings != nil {
		ok, err := s.postings.Exists(ctx, postingID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, posting.ErrNotFound
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := bookmarkKey{user: userID, posting: postingID}
	if _, ok := s.items[k]; ok {
		return false, nil
	}
	s.nextID++
	s.items[k] = bookmark.Bookmark{ID: s.nextID, UserID: userID, PostingID: postingID, CreatedAt: time.Now().UTC()}
	return true, nil
}

func (s *Bookmarks) Remove(_ context.Context, userID, postingID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := bookmarkKey{user: userID, posting: postingID}
	if _, ok := s.items[k]; !ok {
		return false, nil
	}
	delete(s.items, k)
	return true, nil
}

func (s *Bookmarks) List(ctx context.Context, userID uuid.UUID) ([]bookmark.Entry, error) {
	s.mu.RLock()
	marks := make([]bookmark.Bookmark, 0)
	for k, b := range s.items {
		if k.user == userID {
			marks = append(marks, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(marks, func(i, j int) bool { return marks[i].ID > marks[j].ID })

	out := make([]bookmark.Entry, 0, len(marks))
	for _, b := range marks {
		e := bookmark.Entry{Bookmark: b}
		if s.postings != nil {
			d, err := s.postings.GetDetail(ctx, b.PostingID)
			if err != nil {
				continue
			}
			e.Title, e.Summary, e.Deadline = d.Title, d.Summary, d.Deadline
			e.CompanyName, e.CompanyLogo = d.CompanyName, d.CompanyLogo
		}
		out = append(out, e)
	}
	return out, nil
}
