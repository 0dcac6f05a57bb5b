package search

import (
	"math"
	"strconv"
	"strings"
)

const PageSize = 20

// Page is the window of one result page over an ordered result set.
type Page struct {
	Number       int
	TotalPages   int
	TotalResults int
	Offset       int
	Limit        int
}

// ParsePage reads a 1-based page number. Anything that is not a whole number
// yields 1. "2.0" is accepted as 2.
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return max(n, 1)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 1
	}
	if f < 1 {
		return 1
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Window clamps requested into [1, total pages] for total results. An empty
// result set still has one (empty) page.
func Window(requested, total int) Page {
	if total < 0 {
		total = 0
	}
	pages := max(1, (total+PageSize-1)/PageSize)

	n := requested
	if n < 1 {
		n = 1
	}
	if n > pages {
		n = pages
	}

	return Page{
		Number:       n,
		TotalPages:   pages,
		TotalResults: total,
		Offset:       (n - 1) * PageSize,
		Limit:        PageSize,
	}
}

// Slice returns the part of items that falls on p.
func Slice[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return items[:0]
	}
	end := min(p.Offset+p.Limit, len(items))
	return items[p.Offset:end]
}
