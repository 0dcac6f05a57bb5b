package search

import "testing"

func TestWindow(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		total     int
		wantPage  int
		wantPages int
		wantOff   int
	}{
		{"first page", 1, 45, 1, 3, 0},
		{"middle page", 2, 45, 2, 3, 20},
		{"beyond last", 9, 45, 3, 3, 40},
		{"zero", 0, 45, 1, 3, 0},
		{"negative", -4, 45, 1, 3, 0},
		{"exact multiple", 2, 40, 2, 2, 20},
		{"empty set", 5, 0, 1, 1, 0},
	}
	for _, tc := range cases {
		p := Window(tc.requested, tc.total)
		if p.Number != tc.wantPage || p.TotalPages != tc.wantPages || p.Offset != tc.wantOff {
			t.Fatalf("%s: got %+v", tc.name, p)
		}
		if p.Limit != PageSize || p.TotalResults != tc.total {
			t.Fatalf("%s: unexpected limit/total %+v", tc.name, p)
		}
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":         1,
		"1":        1,
		" 7 ":      7,
		"0":        1,
		"-1":       1,
		"abc":      1,
		"3.0":      3,
		"3.5":      1,
		"NaN":      1,
		"1e2":      100,
		"99999999999999999999": 2147483647,
	}
	for in, want := range cases {
		if got := ParsePage(in); got != want {
			t.Fatalf("%q: expected %d, got %d", in, want, got)
		}
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	last := Slice(items, Window(3, len(items)))
	if len(last) != 5 || last[0] != 40 {
		t.Fatalf("unexpected last page %v", last)
	}

	if got := Slice([]int{}, Window(1, 0)); len(got) != 0 {
		t.Fatalf("expected empty slice")
	}
}
