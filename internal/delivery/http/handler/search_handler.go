package handler

import (
	"errors"
	"net/url"
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const msgSearchFailed = "Search request failed"

type SearchHandler struct {
	uc usecase.SearchUsecase
}

func NewSearchHandler(uc usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

func (h *SearchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/search", h.Search)
}

// Search answers every failure with 400. Validation failures carry one entry
// per offending parameter.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	params, ferrs := queryParams(string(c.Request().URI().QueryString()))
	if len(ferrs) > 0 {
		data := response.Errors[search.FieldError]{Errors: ferrs}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid search parameters", data, nil)
	}

	res, err := h.uc.Search(c.Context(), params, middleware.Viewer(c))
	if err != nil {
		var verr *search.ValidationError
		if errors.As(err, &verr) {
			data := response.Errors[search.FieldError]{Errors: verr.Fields}
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid search parameters", data, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, msgSearchFailed, nil, err)
	}

	out := dto.SearchResponse{
		Results:      make([]dto.SearchResultResponse, 0, len(res.Items)),
		Page:         res.Page.Number,
		TotalPages:   res.Page.TotalPages,
		TotalResults: res.Page.TotalResults,
	}
	for _, it := range res.Items {
		out.Results = append(out.Results, dto.SearchResultResponse{
			JobPostingID:    it.ID,
			JobPostingTitle: it.Title,
			City:            it.City,
			District:        it.District,
			Summary:         it.Summary,
			Deadline:        formatDate(it.Deadline),
			IsBookmarked:    it.IsBookmarked,
			CompanyName:     it.CompanyName,
			CompanyLogo:     it.CompanyLogo,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// queryParams keeps repeated keys, which c.Queries collapses. A pair that
// fails to unescape is reported under its own field name; the rest of the
// query is still read.
func queryParams(raw string) (search.Params, []search.FieldError) {
	params := search.Params{}
	var errs []search.FieldError
	reported := map[string]bool{}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")

		key, kerr := url.QueryUnescape(k)
		if kerr != nil {
			key = k
		}
		value, verr := url.QueryUnescape(v)
		if kerr != nil || verr != nil {
			field := strings.TrimSuffix(key, "[]")
			if !reported[field] {
				reported[field] = true
				errs = append(errs, search.FieldError{Field: field, Message: "malformed percent-encoding"})
			}
			continue
		}
		params[key] = append(params[key], value)
	}
	return params, errs
}
