package search

import (
	"fmt"
	"math"
	"testing"

	"github.com/randytsao24/tripmate/internal/models"
)

func options(mode models.Mode, n int) []models.TransportOption {
	out := make([]models.TransportOption, n)
	for i := range out {
		out[i] = models.TransportOption{
			Mode:          mode,
			Grade:         fmt.Sprintf("%s-%d", mode, i),
			Departure:     "서울",
			Arrival:       "부산",
			DepartureTime: "10:00",
			ArrivalTime:   "13:00",
			Price:         1000 * (i + 1),
		}
	}
	return out
}

func TestPaginateScenarioC(t *testing.T) {
	rail, bus := options(models.ModeRail, 5), options(models.ModeBus, 7)

	first := Paginate(rail, bus, 0, 5)
	if len(first.Content) != 5 || first.TotalPages != 3 || first.TotalElements != 12 {
		t.Errorf("page 0 = %d items, %d pages, %d total", len(first.Content), first.TotalPages, first.TotalElements)
	}

	last := Paginate(rail, bus, 2, 5)
	if len(last.Content) != 2 {
		t.Errorf("page 2 should have 2 items, got %d", len(last.Content))
	}
	if last.Content[0].ID != 11 || last.Content[1].ID != 12 {
		t.Errorf("unexpected ids on last page: %d, %d", last.Content[0].ID, last.Content[1].ID)
	}
}

func TestPaginateScenarioD(t *testing.T) {
	page := Paginate(options(models.ModeRail, 6), options(models.ModeBus, 6), 10, 5)

	if page.Content == nil || len(page.Content) != 0 {
		t.Errorf("expected empty non-nil content, got %v", page.Content)
	}
	if page.CurrentPage != 10 || page.TotalElements != 12 || page.TotalPages != 3 || page.Size != 5 {
		t.Errorf("unexpected page metadata %+v", page)
	}
}

func TestPaginateNumbersRailFirst(t *testing.T) {
	page := Paginate(options(models.ModeRail, 2), options(models.ModeBus, 3), 0, 10)

	wantModes := []models.Mode{models.ModeRail, models.ModeRail, models.ModeBus, models.ModeBus, models.ModeBus}
	for i, opt := range page.Content {
		if opt.ID != int64(i+1) {
			t.Errorf("item %d has id %d", i, opt.ID)
		}
		if opt.Mode != wantModes[i] {
			t.Errorf("item %d has mode %s, want %s", i, opt.Mode, wantModes[i])
		}
	}
}

func TestPaginateDoesNotMutateInput(t *testing.T) {
	rail := options(models.ModeRail, 2)
	Paginate(rail, nil, 0, 5)
	if rail[0].ID != 0 {
		t.Error("Paginate wrote ids into the caller's slice")
	}
}

func TestPaginateProperties(t *testing.T) {
	for _, total := range []int{0, 1, 4, 5, 6, 12, 23} {
		for _, size := range []int{1, 2, 5, 7} {
			rail := options(models.ModeRail, total/2)
			bus := options(models.ModeBus, total-total/2)

			first := Paginate(rail, bus, 0, size)
			sum := 0
			for page := 0; page < first.TotalPages; page++ {
				p := Paginate(rail, bus, page, size)
				if len(p.Content) > size {
					t.Errorf("total=%d size=%d page=%d: %d items", total, size, page, len(p.Content))
				}
				sum += len(p.Content)
			}
			if int64(sum) != first.TotalElements {
				t.Errorf("total=%d size=%d: pages sum to %d, want %d", total, size, sum, first.TotalElements)
			}

			beyond := Paginate(rail, bus, first.TotalPages, size)
			if len(beyond.Content) != 0 || beyond.CurrentPage != first.TotalPages {
				t.Errorf("total=%d size=%d: page past end returned %+v", total, size, beyond)
			}
		}
	}
}

func TestPaginateDegenerateInput(t *testing.T) {
	if p := Paginate(options(models.ModeBus, 3), nil, 0, 0); len(p.Content) != 0 || p.TotalPages != 0 {
		t.Errorf("size 0 should yield nothing, got %+v", p)
	}
	if p := Paginate(options(models.ModeBus, 3), nil, -1, 5); len(p.Content) != 0 {
		t.Errorf("negative page should yield nothing, got %+v", p)
	}
}

func TestPaginateHugePageAndSize(t *testing.T) {
	bus := options(models.ModeBus, 12)

	p := Paginate(nil, bus, 0, math.MaxInt)
	if p.TotalPages != 1 || p.TotalElements != 12 || len(p.Content) != 12 {
		t.Errorf("size MaxInt: got totalPages=%d content=%d", p.TotalPages, len(p.Content))
	}

	for _, tc := range []struct{ page, size, wantPages int }{
		{2, math.MaxInt/2 + 1, 1},
		{1, math.MaxInt, 1},
		{math.MaxInt, 5, 3},
		{math.MaxInt, math.MaxInt, 1},
	} {
		p := Paginate(nil, bus, tc.page, tc.size)
		if len(p.Content) != 0 {
			t.Errorf("page=%d size=%d: expected empty content, got %d", tc.page, tc.size, len(p.Content))
		}
		if p.TotalElements != 12 || p.TotalPages != tc.wantPages {
			t.Errorf("page=%d size=%d: totalElements=%d totalPages=%d, want 12 and %d",
				tc.page, tc.size, p.TotalElements, p.TotalPages, tc.wantPages)
		}
	}

	if p := PaginateRendered(nil, []string{"우등 | 서울경부 → 부산 | 0700 → 1130 | 34200원"}, 3, math.MaxInt/2+1); len(p.Content) != 0 {
		t.Errorf("rendered path: expected empty content, got %+v", p)
	}
}

// ============================================================================
// Display-string round trip
// ============================================================================

func TestParseRendered(t *testing.T) {
	got := ParseRendered("KTX | 서울역 → 부산역 | 1023 → 1335 | 59800원", models.ModeRail, 3)
	want := models.TransportOption{
		ID: 3, Mode: models.ModeRail, Grade: "KTX",
		Departure: "서울", Arrival: "부산",
		DepartureTime: "10:23", ArrivalTime: "13:35",
		Price: 59800,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseRenderedPlaceholder(t *testing.T) {
	for _, line := range []string{
		"",
		"garbage",
		"KTX | 서울역 부산역 | 1023 → 1335 | 59800원",
		"KTX | 서울역 → 부산역 | 1023 1335 | 59800원",
		"KTX | 서울역 → 부산역 | 1023 → 1335",
		"KTX | 서울역 → 부산역 | 1023 → 1335 | free",
	} {
		got := ParseRendered(line, models.ModeBus, 9)
		if got.Departure != "출발지" || got.Arrival != "도착지" ||
			got.DepartureTime != "00:00" || got.ArrivalTime != "00:00" || got.Price != 0 {
			t.Errorf("line %q: expected placeholder, got %+v", line, got)
		}
		if got.ID != 9 || got.Mode != models.ModeBus {
			t.Errorf("line %q: placeholder lost id or mode: %+v", line, got)
		}
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	for _, opt := range []models.TransportOption{
		{Mode: models.ModeRail, Grade: "ITX-새마을", Departure: "용산", Arrival: "광주송정", DepartureTime: "06:05", ArrivalTime: "10:01", Price: 38400},
		{Mode: models.ModeBus, Grade: "프리미엄", Departure: "동서울", Arrival: "강릉", DepartureTime: "23:30", ArrivalTime: "01:55", Price: 25000},
	} {
		back := ParseRendered(Render(opt), opt.Mode, 0)
		if back != opt {
			t.Errorf("round trip changed option: %+v -> %+v", opt, back)
		}
	}
}

func TestPaginateRenderedSkipsSentinels(t *testing.T) {
	rail := []string{NoRailResults}
	bus := []string{
		"우등 | 서울경부 → 부산 | 1005 → 1430 | 34200원",
		"일반 | 서울경부 → 부산 | 1230 → 1700 | 23000원",
	}

	page := PaginateRendered(rail, bus, 0, 5)
	if page.TotalElements != 2 || len(page.Content) != 2 {
		t.Fatalf("expected 2 options, got %+v", page)
	}
	if page.Content[0].ID != 1 || page.Content[1].ID != 2 {
		t.Errorf("sentinel affected numbering: ids %d, %d", page.Content[0].ID, page.Content[1].ID)
	}
	if page.Content[0].Mode != models.ModeBus || page.Content[0].DepartureTime != "10:05" {
		t.Errorf("unexpected first option %+v", page.Content[0])
	}
}

func TestStructuredAndRenderedPathsAgree(t *testing.T) {
	rail := Shape([]models.RawTransportRecord{
		{Grade: "KTX", OriginName: "서울", DestinationName: "부산", DepartureTimestamp: "202501010530", ArrivalTimestamp: "202501010818", Price: 59800},
	}, models.ModeRail, TimeFilter{})
	bus := Shape([]models.RawTransportRecord{
		{Grade: "우등", OriginName: "서울경부", DestinationName: "부산", DepartureTimestamp: "202501011005", ArrivalTimestamp: "202501011430", Price: 34200},
	}, models.ModeBus, TimeFilter{})

	structured := Paginate(rail, bus, 0, 5)
	rendered := PaginateRendered(RenderAll(rail, models.ModeRail), RenderAll(bus, models.ModeBus), 0, 5)

	if len(structured.Content) != len(rendered.Content) {
		t.Fatalf("paths disagree on length: %d vs %d", len(structured.Content), len(rendered.Content))
	}
	for i := range structured.Content {
		if structured.Content[i] != rendered.Content[i] {
			t.Errorf("item %d: %+v vs %+v", i, structured.Content[i], rendered.Content[i])
		}
	}
}
