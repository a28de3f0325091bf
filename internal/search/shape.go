package search

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/models"
)

// timestampLen is the width of a yyyyMMddHHmm provider timestamp
const timestampLen = 12

// Sentinels shown in place of an empty mode in the display-string response
const (
	NoBusResults  = "해당 날짜에 버스 정보가 없습니다."
	NoRailResults = "해당 날짜에 열차 정보가 없습니다."

	// sentinelMarker is shared by both sentinels
	sentinelMarker = "해당 날짜에"
)

// stationSuffix is appended to rail station names for display
const stationSuffix = "역"

// TimeFilter is an optional earliest departure clock
type TimeFilter struct {
	hhmm    int
	present bool
}

// ParseTimeFilter parses "HH:mm". Empty input means no filter. Input that does
// not parse is logged and also treated as no filter.
func ParseTimeFilter(raw string) TimeFilter {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TimeFilter{}
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		logging.Warn().Str("time", raw).Msg("unparseable departure time filter, ignoring")
		return TimeFilter{}
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil {
		logging.Warn().Str("time", raw).Msg("unparseable departure time filter, ignoring")
		return TimeFilter{}
	}
	return TimeFilter{hhmm: h*100 + m, present: true}
}

// Present reports whether the filter restricts anything
func (f TimeFilter) Present() bool {
	return f.present
}

// allows reports whether a departure at clock (HHMM) passes
func (f TimeFilter) allows(clock int) bool {
	return !f.present || clock >= f.hhmm
}

// clockOf returns HHMM from characters 9-12 of a timestamp
func clockOf(ts string) (int, bool) {
	if !wellFormed(ts) {
		return 0, false
	}
	n, err := strconv.Atoi(ts[8:timestampLen])
	return n, err == nil
}

// wellFormed reports whether ts starts with 12 digits
func wellFormed(ts string) bool {
	if len(ts) < timestampLen {
		return false
	}
	for i := 0; i < timestampLen; i++ {
		if ts[i] < '0' || ts[i] > '9' {
			return false
		}
	}
	return true
}

// Shape drops malformed records, applies the filter, sorts by departure and
// renders options. Ids are left zero for Paginate to assign.
func Shape(records []models.RawTransportRecord, mode models.Mode, filter TimeFilter) []models.TransportOption {
	kept := make([]models.RawTransportRecord, 0, len(records))
	for _, rec := range records {
		if !wellFormed(rec.DepartureTimestamp) || !wellFormed(rec.ArrivalTimestamp) {
			continue
		}
		clock, _ := clockOf(rec.DepartureTimestamp)
		if !filter.allows(clock) {
			continue
		}
		kept = append(kept, rec)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].DepartureTimestamp < kept[j].DepartureTimestamp
	})

	options := make([]models.TransportOption, len(kept))
	for i, rec := range kept {
		options[i] = models.TransportOption{
			Mode:          mode,
			Grade:         rec.Grade,
			Departure:     rec.OriginName,
			Arrival:       rec.DestinationName,
			DepartureTime: formatClock(rec.DepartureTimestamp[8:timestampLen]),
			ArrivalTime:   formatClock(rec.ArrivalTimestamp[8:timestampLen]),
			Price:         rec.Price,
		}
	}
	return options
}

// formatClock turns "1023" into "10:23"; other widths pass through
func formatClock(hhmm string) string {
	if len(hhmm) != 4 {
		return hhmm
	}
	return hhmm[:2] + ":" + hhmm[2:]
}

// Render formats an option as "grade | origin → destination | HHmm → HHmm | N원".
// Rail station names get the 역 suffix.
func Render(opt models.TransportOption) string {
	origin, destination := opt.Departure, opt.Arrival
	if opt.Mode == models.ModeRail {
		origin += stationSuffix
		destination += stationSuffix
	}
	return fmt.Sprintf("%s | %s → %s | %s → %s | %d원",
		opt.Grade,
		origin,
		destination,
		strings.ReplaceAll(opt.DepartureTime, ":", ""),
		strings.ReplaceAll(opt.ArrivalTime, ":", ""),
		opt.Price)
}

// RenderAll renders options, substituting the mode's sentinel when there are none
func RenderAll(options []models.TransportOption, mode models.Mode) []string {
	if len(options) == 0 {
		return []string{sentinelFor(mode)}
	}
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = Render(opt)
	}
	return out
}

func sentinelFor(mode models.Mode) string {
	if mode == models.ModeRail {
		return NoRailResults
	}
	return NoBusResults
}

// IsSentinel reports whether a display line stands for "no results"
func IsSentinel(line string) bool {
	return strings.Contains(line, sentinelMarker)
}
