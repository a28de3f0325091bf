package validation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type pageRequest struct {
	Keyword string `json:"keyword" validate:"required"`
	Page    int    `json:"page" validate:"gte=0"`
	Size    int    `json:"size" validate:"gt=0,max=100"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     pageRequest
		wantErr bool
		field   string
	}{
		{"valid", pageRequest{Keyword: "부산", Page: 0, Size: 5}, false, ""},
		{"missing keyword", pageRequest{Page: 0, Size: 5}, true, "keyword"},
		{"negative page", pageRequest{Keyword: "a", Page: -1, Size: 5}, true, "page"},
		{"zero size", pageRequest{Keyword: "a", Size: 0}, true, "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var rve *RequestValidationError
			if !errors.As(err, &rve) {
				t.Fatalf("expected *RequestValidationError, got %T", err)
			}
			if rve.Errors[0].Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, rve.Errors[0].Field)
			}
		})
	}
}

func TestIsValidationErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("search: %w", Fieldf("date", "invalid date %q", "2025/01/01"))
	if !IsValidationError(err) {
		t.Error("wrapped validation error not detected")
	}
	if !strings.Contains(err.Error(), "2025/01/01") {
		t.Errorf("message lost: %s", err)
	}
	if IsValidationError(errors.New("boom")) {
		t.Error("plain error reported as validation error")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2025-01-01", "20250101", false},
		{"20250101", "20250101", false},
		{" 2024-02-29 ", "20240229", false},
		{"2001-01-01", "20010101", false},
		{"2025/01/01", "", true},
		{"2025-13-01", "", true},
		{"250101", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate("date", tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) || !IsValidationError(err) {
					t.Errorf("expected invalid date validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s := got.Format(CompactDateLayout); s != tt.want {
				t.Errorf("got %s, want %s", s, tt.want)
			}
		})
	}
}
