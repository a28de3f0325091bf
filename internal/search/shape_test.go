package search

import (
	"reflect"
	"testing"

	"github.com/randytsao24/tripmate/internal/models"
)

func record(dep, arr string) models.RawTransportRecord {
	return models.RawTransportRecord{
		Grade:              "우등",
		OriginName:         "서울경부",
		DestinationName:    "부산",
		DepartureTimestamp: dep,
		ArrivalTimestamp:   arr,
		Price:              34200,
	}
}

func TestShapeScenarioB(t *testing.T) {
	recs := []models.RawTransportRecord{
		record("202501011005", "202501011430"),
		record("202501011230", "202501011700"),
	}

	got := Shape(recs, models.ModeBus, ParseTimeFilter("11:00"))

	if len(got) != 1 {
		t.Fatalf("expected 1 option, got %d", len(got))
	}
	if got[0].DepartureTime != "12:30" || got[0].ArrivalTime != "17:00" {
		t.Errorf("unexpected clocks %s -> %s", got[0].DepartureTime, got[0].ArrivalTime)
	}
}

func TestShapeDropsMalformed(t *testing.T) {
	recs := []models.RawTransportRecord{
		record("2025010110", "202501011430"),
		record("202501011005", "2025"),
		record("20250101ab05", "202501011430"),
		record("", ""),
		record("202501010700", "202501011100"),
	}

	got := Shape(recs, models.ModeRail, TimeFilter{})
	if len(got) != 1 || got[0].DepartureTime != "07:00" {
		t.Errorf("expected only the 07:00 record, got %+v", got)
	}
}

func TestShapeSortsStably(t *testing.T) {
	a := record("202501011500", "202501011900")
	b := record("202501010600", "202501011000")
	c := record("202501011500", "202501011830")
	c.Grade = "일반"
	d := record("202501020000", "202501020400")

	got := Shape([]models.RawTransportRecord{a, b, c, d}, models.ModeBus, TimeFilter{})

	var deps []string
	for _, o := range got {
		deps = append(deps, o.DepartureTime)
	}
	if want := []string{"06:00", "15:00", "15:00", "00:00"}; !reflect.DeepEqual(deps, want) {
		t.Errorf("order = %v, want %v", deps, want)
	}
	// equal departures keep input order
	if got[1].Grade != "우등" || got[2].Grade != "일반" {
		t.Errorf("sort not stable: %s, %s", got[1].Grade, got[2].Grade)
	}
}

func TestShapeFilterProperty(t *testing.T) {
	var recs []models.RawTransportRecord
	for _, hhmm := range []string{"0000", "0559", "0600", "1059", "1100", "1101", "2359"} {
		recs = append(recs, record("20250101"+hhmm, "202501020000"))
	}

	for _, filter := range []string{"00:00", "06:00", "11:00", "23:59"} {
		f := ParseTimeFilter(filter)
		got := Shape(recs, models.ModeBus, f)
		for i, o := range got {
			if len(o.DepartureTime) != 5 {
				t.Errorf("filter %s: clock %q is not HH:MM", filter, o.DepartureTime)
			}
			clock := o.DepartureTime[:2] + o.DepartureTime[3:]
			if clock < filter[:2]+filter[3:] {
				t.Errorf("filter %s let %s through", filter, o.DepartureTime)
			}
			if i > 0 && got[i-1].DepartureTime > o.DepartureTime {
				t.Errorf("filter %s: not sorted at %d", filter, i)
			}
		}
	}
}

func TestParseTimeFilter(t *testing.T) {
	tests := []struct {
		in      string
		present bool
		hhmm    int
	}{
		{"", false, 0},
		{"   ", false, 0},
		{"11:00", true, 1100},
		{"9:05", true, 905},
		{"07:30:15", true, 730},
		{"1100", false, 0},
		{"ab:cd", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := ParseTimeFilter(tt.in)
			if f.Present() != tt.present || f.hhmm != tt.hhmm {
				t.Errorf("ParseTimeFilter(%q) = %+v", tt.in, f)
			}
		})
	}
}

func TestInvalidFilterPassesEverything(t *testing.T) {
	recs := []models.RawTransportRecord{
		record("202501010500", "202501010900"),
		record("202501012300", "202501020300"),
	}
	if got := Shape(recs, models.ModeBus, ParseTimeFilter("late")); len(got) != 2 {
		t.Errorf("expected invalid filter to pass all, got %d", len(got))
	}
}

func TestRender(t *testing.T) {
	bus := models.TransportOption{Mode: models.ModeBus, Grade: "우등", Departure: "서울경부", Arrival: "부산",
		DepartureTime: "10:05", ArrivalTime: "14:30", Price: 34200}
	if got, want := Render(bus), "우등 | 서울경부 → 부산 | 1005 → 1430 | 34200원"; got != want {
		t.Errorf("bus render = %q, want %q", got, want)
	}

	rail := models.TransportOption{Mode: models.ModeRail, Grade: "KTX", Departure: "서울", Arrival: "부산",
		DepartureTime: "10:23", ArrivalTime: "13:35", Price: 59800}
	if got, want := Render(rail), "KTX | 서울역 → 부산역 | 1023 → 1335 | 59800원"; got != want {
		t.Errorf("rail render = %q, want %q", got, want)
	}
}

func TestRenderAllSentinels(t *testing.T) {
	if got := RenderAll(nil, models.ModeBus); !reflect.DeepEqual(got, []string{NoBusResults}) {
		t.Errorf("bus sentinel = %v", got)
	}
	if got := RenderAll(nil, models.ModeRail); !reflect.DeepEqual(got, []string{NoRailResults}) {
		t.Errorf("rail sentinel = %v", got)
	}
	if !IsSentinel(NoBusResults) || !IsSentinel(NoRailResults) || IsSentinel("KTX | 서울역 → 부산역 | 1023 → 1335 | 59800원") {
		t.Error("IsSentinel misclassifies lines")
	}
}
