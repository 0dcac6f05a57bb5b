package routes_test

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/domain/posting"
	"jobboard/internal/domain/region"
	"jobboard/internal/hierarchy"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository/memory"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type searchData struct {
	Results []struct {
		JobPostingID    uuid.UUID `json:"job_posting_id"`
		JobPostingTitle string    `json:"job_posting_title"`
		City            string    `json:"city"`
		Deadline        string    `json:"deadline"`
		IsBookmarked    bool      `json:"is_bookmarked"`
		CompanyName     string    `json:"company_name"`
	} `json:"results"`
	Page         int `json:"page"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

type jsonCache struct {
	data map[string][]byte
}

func (c *jsonCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *jsonCache) SetManyJSON(_ context.Context, values map[string]any, _ time.Duration) error {
	for k, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.data[k] = b
	}
	return nil
}

type testEnv struct {
	app       *fiber.App
	jwt       *jwt.HMACService
	postings  *memory.Postings
	districts *memory.Districts
	bookmarks *memory.Bookmarks
	cache     *jsonCache
	ids       []uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := log.New(io.Discard, "", 0)

	companies := memory.NewCompanies()
	districts := memory.NewDistricts()
	postings := memory.NewPostings(companies, districts)
	bookmarks := memory.NewBookmarks(postings)
	cache := &jsonCache{data: map[string][]byte{}}

	cid, err := companies.Upsert(ctx, posting.Company{Name: "Acme Coffee"})
	if err != nil {
		t.Fatalf("seed company: %v", err)
	}
	if _, err := districts.Upsert(ctx, []region.District{{
		CityNo: "11", CityName: "서울특별시",
		DistrictNo: "11680", DistrictName: "강남구",
		TownNo: "T1", TownName: "역삼동",
		Geometry: orb.MultiPolygon{{{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}, {0, 0}}}},
	}}); err != nil {
		t.Fatalf("seed district: %v", err)
	}

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	var items []posting.Posting
	var ids []uuid.UUID
	for i, city := range []string{"서울특별시", "서울특별시", "부산광역시"} {
		p := posting.Posting{
			ID:        uuid.New(),
			Title:     "바리스타 모집",
			City:      city,
			District:  "강남구",
			Town:      "역삼동",
			Location:  orb.Point{500, 500},
			CompanyID: cid,
			WorkDay:   []string{"월", "화"},
			Summary:   "주말 근무 가능자",
			Deadline:  time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		items = append(items, p)
		ids = append(ids, p.ID)
	}
	if err := postings.Insert(ctx, items); err != nil {
		t.Fatalf("seed postings: %v", err)
	}

	jwtSvc := jwt.NewHMACService("test-secret", time.Hour)
	searchCfg := config.SearchConfig{BufferMeters: 3000, RegionMatch: config.RegionMatchAny}

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())

	routes.NewRegistry(handler.NewHealthHandler(nil, nil), v1.Handlers{
		Auth:      middleware.NewViewerAuth(jwtSvc, logger),
		Search:    handler.NewSearchHandler(usecase.NewSearchUsecase(postings, districts, bookmarks, searchCfg, logger)),
		Hierarchy: handler.NewHierarchyHandler(usecase.NewHierarchyUsecase(hierarchy.NewStore(cache), logger)),
		Posting:   handler.NewPostingHandler(usecase.NewPostingUsecase(postings, bookmarks, logger)),
		Bookmark:  handler.NewBookmarkHandler(usecase.NewBookmarkUsecase(bookmarks, postings, logger)),
	}).Register(app)

	return &testEnv{
		app: app, jwt: jwtSvc,
		postings: postings, districts: districts, bookmarks: bookmarks,
		cache: cache, ids: ids,
	}
}

func (e *testEnv) token(t *testing.T, viewer uuid.UUID) string {
	t.Helper()
	tok, err := e.jwt.GenerateAccessToken(viewer, "viewer@example.com")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return tok
}

func (e *testEnv) do(t *testing.T, method, target, token string) (int, semanticResponse) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, target, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode error: %v", method, target, err)
	}
	if sr.Status != resp.StatusCode {
		t.Fatalf("%s %s: envelope status %d != http status %d", method, target, sr.Status, resp.StatusCode)
	}
	return resp.StatusCode, sr
}

func decodeSearch(t *testing.T, sr semanticResponse) searchData {
	t.Helper()
	var d searchData
	if err := json.Unmarshal(sr.Data, &d); err != nil {
		t.Fatalf("search data unmarshal error: %v", err)
	}
	return d
}

func TestSearch_Anonymous(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search", "")
	if status != 200 || sr.Message != "ok" {
		t.Fatalf("expected 200 ok, got %d %s", status, sr.Message)
	}
	d := decodeSearch(t, sr)
	if len(d.Results) != 3 || d.TotalResults != 3 || d.Page != 1 || d.TotalPages != 1 {
		t.Fatalf("unexpected search data %+v", d)
	}
	for _, r := range d.Results {
		if r.IsBookmarked {
			t.Fatalf("anonymous result marked bookmarked")
		}
	}
	if d.Results[0].JobPostingID != e.ids[2] || d.Results[0].Deadline != "2026-06-30" {
		t.Fatalf("expected newest first with date deadline, got %+v", d.Results[0])
	}
	if e.bookmarks.AmongCalls() != 0 {
		t.Fatalf("expected bookmark store untouched, got %d calls", e.bookmarks.AmongCalls())
	}
}

func TestSearch_InvalidTokenIsAnonymous(t *testing.T) {
	e := newTestEnv(t)

	status, _ := e.do(t, "GET", "/api/v1/search", "garbage")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	if e.bookmarks.AmongCalls() != 0 {
		t.Fatalf("invalid credential must be treated as anonymous")
	}
}

func TestSearch_AuthenticatedMarksBookmarks(t *testing.T) {
	e := newTestEnv(t)
	viewer := uuid.New()
	tok := e.token(t, viewer)

	status, _ := e.do(t, "POST", "/api/v1/bookmarks/"+e.ids[0].String(), tok)
	if status != 201 {
		t.Fatalf("expected 201, got %d", status)
	}

	_, sr := e.do(t, "GET", "/api/v1/search", tok)
	d := decodeSearch(t, sr)
	marked := 0
	for _, r := range d.Results {
		if r.IsBookmarked {
			marked++
			if r.JobPostingID != e.ids[0] {
				t.Fatalf("wrong posting marked %s", r.JobPostingID)
			}
		}
	}
	if marked != 1 {
		t.Fatalf("expected 1 bookmarked result, got %d", marked)
	}
	if e.bookmarks.AmongCalls() != 1 {
		t.Fatalf("expected exactly one bulk lookup, got %d", e.bookmarks.AmongCalls())
	}
}

func TestSearch_RepeatedParams(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	if _, err := e.districts.Upsert(ctx, []region.District{{
		CityNo: "26", CityName: "부산광역시",
		DistrictNo: "26350", DistrictName: "해운대구",
		TownNo: "T2", TownName: "우동",
		Geometry: orb.MultiPolygon{{{{50000, 0}, {51000, 0}, {51000, 1000}, {50000, 1000}, {50000, 0}}}},
	}}); err != nil {
		t.Fatalf("seed district: %v", err)
	}

	_, sr := e.do(t, "GET", "/api/v1/search?city_no%5B%5D=11", "")
	if d := decodeSearch(t, sr); d.TotalResults != 2 {
		t.Fatalf("expected 2 Seoul postings, got %d", d.TotalResults)
	}

	_, sr = e.do(t, "GET", "/api/v1/search?city_no%5B%5D=11&city_no%5B%5D=26", "")
	if d := decodeSearch(t, sr); d.TotalResults != 3 {
		t.Fatalf("expected both cities, got %d", d.TotalResults)
	}
}

func TestSearch_ValidationError(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search?search=a&search=b", "")
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}

	var data struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	if len(data.Errors) != 1 || data.Errors[0].Field != "search" {
		t.Fatalf("expected one error for search, got %+v", data.Errors)
	}
}

func searchErrors(t *testing.T, sr semanticResponse) map[string]string {
	t.Helper()
	var data struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("data unmarshal error: %v", err)
	}
	out := make(map[string]string, len(data.Errors))
	for _, fe := range data.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestSearch_MalformedEscapeNamesField(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search?work_day=x&search=100%25%", "")
	if status != 400 {
		t.Fatalf("expected 400, got %d", status)
	}
	errs := searchErrors(t, sr)
	if len(errs) != 1 || errs["search"] == "" {
		t.Fatalf("expected one error for search, got %+v", errs)
	}
}

func TestSearch_InvalidUTF8Rejected(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search?search=%ff&work_day%5B%5D=%c3", "")
	if status != 400 || sr.Message != "Invalid search parameters" {
		t.Fatalf("expected 400 Invalid search parameters, got %d %s", status, sr.Message)
	}
	errs := searchErrors(t, sr)
	if len(errs) != 2 || errs["search"] != "must be valid UTF-8" || errs["work_day"] != "must be valid UTF-8" {
		t.Fatalf("expected search and work_day errors, got %+v", errs)
	}
}

func TestSearch_UnmatchedTown(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search?town_no=NOPE", "")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	d := decodeSearch(t, sr)
	if d.TotalResults != 0 || d.Results == nil || len(d.Results) != 0 || d.Page != 1 {
		t.Fatalf("expected empty first page, got %+v", d)
	}
}

func TestBookmarks_Lifecycle(t *testing.T) {
	e := newTestEnv(t)
	tok := e.token(t, uuid.New())
	target := "/api/v1/bookmarks/" + e.ids[1].String()

	if status, _ := e.do(t, "POST", target, ""); status != 401 {
		t.Fatalf("expected 401 for anonymous, got %d", status)
	}
	if status, _ := e.do(t, "GET", "/api/v1/bookmarks", ""); status != 401 {
		t.Fatalf("expected 401 for anonymous list, got %d", status)
	}
	if status, _ := e.do(t, "POST", target, tok); status != 201 {
		t.Fatalf("expected 201, got %d", status)
	}
	if status, _ := e.do(t, "POST", target, tok); status != 200 {
		t.Fatalf("expected 200 when already bookmarked, got %d", status)
	}
	if status, _ := e.do(t, "POST", "/api/v1/bookmarks/"+uuid.NewString(), tok); status != 404 {
		t.Fatalf("expected 404 for missing posting, got %d", status)
	}
	if status, _ := e.do(t, "POST", "/api/v1/bookmarks/not-a-uuid", tok); status != 400 {
		t.Fatalf("expected 400 for bad id, got %d", status)
	}

	status, sr := e.do(t, "GET", "/api/v1/bookmarks", tok)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var list []struct {
		JobPostingID uuid.UUID `json:"job_posting_id"`
		CompanyName  string    `json:"company_name"`
	}
	if err := json.Unmarshal(sr.Data, &list); err != nil {
		t.Fatalf("list unmarshal error: %v", err)
	}
	if len(list) != 1 || list[0].JobPostingID != e.ids[1] || list[0].CompanyName != "Acme Coffee" {
		t.Fatalf("unexpected list %+v", list)
	}

	if status, _ := e.do(t, "DELETE", target, tok); status != 200 {
		t.Fatalf("expected 200 on delete, got %d", status)
	}
	if status, _ := e.do(t, "DELETE", target, tok); status != 404 {
		t.Fatalf("expected 404 deleting twice, got %d", status)
	}
}

func TestPostingDetail(t *testing.T) {
	e := newTestEnv(t)
	viewer := uuid.New()
	tok := e.token(t, viewer)
	if _, err := e.bookmarks.Add(context.Background(), viewer, e.ids[0]); err != nil {
		t.Fatalf("bookmark: %v", err)
	}

	status, sr := e.do(t, "GET", "/api/v1/postings/"+e.ids[0].String(), tok)
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var d struct {
		JobPostingID uuid.UUID `json:"job_posting_id"`
		Town         string    `json:"town"`
		WorkDay      []string  `json:"work_day"`
		IsBookmarked bool      `json:"is_bookmarked"`
		CompanyName  string    `json:"company_name"`
	}
	if err := json.Unmarshal(sr.Data, &d); err != nil {
		t.Fatalf("detail unmarshal error: %v", err)
	}
	if d.JobPostingID != e.ids[0] || !d.IsBookmarked || d.Town != "역삼동" || len(d.WorkDay) != 2 || d.CompanyName != "Acme Coffee" {
		t.Fatalf("unexpected detail %+v", d)
	}

	if status, _ := e.do(t, "GET", "/api/v1/postings/"+uuid.NewString(), ""); status != 404 {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestTrees_EmptyThenRebuilt(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/api/v1/search/region", "")
	if status != 200 || string(sr.Data) != "[]" {
		t.Fatalf("expected 200 with empty tree, got %d %s", status, sr.Data)
	}
	status, sr = e.do(t, "GET", "/api/v1/search/job", "")
	if status != 200 || string(sr.Data) != "[]" {
		t.Fatalf("expected 200 with empty job tree, got %d %s", status, sr.Data)
	}

	jobs, err := hierarchy.DefaultJobTree()
	if err != nil {
		t.Fatalf("taxonomy: %v", err)
	}
	if _, err := hierarchy.NewRebuilder(e.districts, jobs, e.cache, nil).Rebuild(context.Background()); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	_, sr = e.do(t, "GET", "/api/v1/search/region", "")
	var tree hierarchy.RegionTree
	if err := json.Unmarshal(sr.Data, &tree); err != nil {
		t.Fatalf("tree unmarshal error: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != "11" || len(tree[0].Districts) != 1 || len(tree[0].Districts[0].Towns) != 1 {
		t.Fatalf("unexpected region tree %+v", tree)
	}

	_, sr = e.do(t, "GET", "/api/v1/search/job", "")
	var jt hierarchy.JobTree
	if err := json.Unmarshal(sr.Data, &jt); err != nil {
		t.Fatalf("job tree unmarshal error: %v", err)
	}
	if len(jt) != len(jobs) {
		t.Fatalf("expected %d categories, got %d", len(jobs), len(jt))
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)

	status, sr := e.do(t, "GET", "/health", "")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var checks map[string]string
	if err := json.Unmarshal(sr.Data, &checks); err != nil {
		t.Fatalf("health unmarshal error: %v", err)
	}
	if checks["database"] != "skipped" || checks["cache"] != "skipped" {
		t.Fatalf("unexpected checks %+v", checks)
	}
}
