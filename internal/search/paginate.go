package search

import (
	"strconv"
	"strings"

	"github.com/randytsao24/tripmate/internal/models"
)

const (
	fieldSeparator = " | "
	arrow          = " → "
)

// placeholderOption stands in for a display line that cannot be parsed back
var placeholderOption = models.TransportOption{
	Departure:     "출발지",
	Arrival:       "도착지",
	DepartureTime: "00:00",
	ArrivalTime:   "00:00",
	Price:         0,
}

// Paginate numbers rail options 1..R and bus options R+1..R+B, then returns
// one page of the merged sequence. A page past the end is empty, not an error.
func Paginate(rail, bus []models.TransportOption, page, size int) models.TransportPage {
	all := make([]models.TransportOption, 0, len(rail)+len(bus))
	for _, opt := range rail {
		opt.ID = int64(len(all) + 1)
		all = append(all, opt)
	}
	for _, opt := range bus {
		opt.ID = int64(len(all) + 1)
		all = append(all, opt)
	}
	return slicePage(all, page, size)
}

func slicePage(all []models.TransportOption, page, size int) models.TransportPage {
	total := len(all)
	result := models.TransportPage{
		Content:       []models.TransportOption{},
		TotalElements: int64(total),
		CurrentPage:   page,
		Size:          size,
	}
	if size <= 0 {
		return result
	}
	result.TotalPages = total / size
	if total%size != 0 {
		result.TotalPages++
	}

	// checked before multiplying so page*size cannot overflow
	if page < 0 || page >= result.TotalPages {
		return result
	}
	start := page * size
	end := start + min(size, total-start)
	result.Content = all[start:end]
	return result
}

// ParseRendered recovers an option from a Render line. Any line that does not
// split into the expected fields yields the placeholder option with mode and id set.
func ParseRendered(line string, mode models.Mode, id int64) models.TransportOption {
	fallback := placeholderOption
	fallback.Mode = mode
	fallback.ID = id

	parts := strings.Split(line, fieldSeparator)
	if len(parts) < 4 {
		return fallback
	}

	route := strings.Split(parts[1], arrow)
	clocks := strings.Split(parts[2], arrow)
	if len(route) < 2 || len(clocks) < 2 {
		return fallback
	}

	price, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSuffix(strings.TrimSpace(parts[3]), "원"), ",", ""))
	if err != nil {
		return fallback
	}

	return models.TransportOption{
		ID:            id,
		Mode:          mode,
		Grade:         parts[0],
		Departure:     strings.TrimSuffix(route[0], stationSuffix),
		Arrival:       strings.TrimSuffix(route[1], stationSuffix),
		DepartureTime: formatClock(clocks[0]),
		ArrivalTime:   formatClock(clocks[1]),
		Price:         price,
	}
}

// PaginateRendered paginates display lines by parsing them back into options.
// Sentinel lines are skipped and not numbered.
func PaginateRendered(rail, bus []string, page, size int) models.TransportPage {
	var all []models.TransportOption
	add := func(lines []string, mode models.Mode) {
		for _, line := range lines {
			if IsSentinel(line) {
				continue
			}
			all = append(all, ParseRendered(line, mode, int64(len(all)+1)))
		}
	}
	add(rail, models.ModeRail)
	add(bus, models.ModeBus)
	return slicePage(all, page, size)
}
