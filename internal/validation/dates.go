package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate marks a travel date in neither accepted layout
var ErrInvalidDate = errors.New("invalid date")

const (
	DashedDateLayout  = "2006-01-02"
	CompactDateLayout = "20060102"
)

// ParseDate accepts yyyy-MM-dd or yyyyMMdd. Past dates are accepted.
// Failures match both ErrInvalidDate and *RequestValidationError.
func ParseDate(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)

	layout := CompactDateLayout
	if strings.Contains(s, "-") {
		layout = DashedDateLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidDate,
			Fieldf(field, "%s must be yyyy-MM-dd or yyyyMMdd, got %q", field, raw))
	}
	return t, nil
}
