// Reelmatch - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"strings"
	"testing"
)

type selectionRequest struct {
	Titles []string `json:"selected_movies" validate:"max=3,dive,title"`
	TopN   int      `koanf:"top_n" validate:"min=1,max=50"`
	Format string   `validate:"omitempty,oneof=json console"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     selectionRequest
		wantField string
		wantTag   string
	}{
		{
			name:  "valid",
			input: selectionRequest{Titles: []string{"Toy Story (1995)"}, TopN: 5},
		},
		{
			name:  "empty selection is valid",
			input: selectionRequest{TopN: 5},
		},
		{
			name:      "too many titles",
			input:     selectionRequest{Titles: []string{"a", "b", "c", "d"}, TopN: 5},
			wantField: "selected_movies",
			wantTag:   "max",
		},
		{
			name:  "C1 control rune from latin-1 title",
			input: selectionRequest{Titles: []string{"Schindler\u0092s List (1993)"}, TopN: 5},
		},
		{
			name:      "invalid UTF-8 in title",
			input:     selectionRequest{Titles: []string{"bad\xfftitle"}, TopN: 5},
			wantField: "selected_movies[0]",
			wantTag:   "title",
		},
		{
			name:      "title too long",
			input:     selectionRequest{Titles: []string{strings.Repeat("x", MaxTitleLength+1)}, TopN: 5},
			wantField: "selected_movies[0]",
			wantTag:   "title",
		},
		{
			name:      "koanf tag names the field",
			input:     selectionRequest{TopN: 0},
			wantField: "top_n",
			wantTag:   "min",
		},
		{
			name:      "oneof",
			input:     selectionRequest{TopN: 5, Format: "xml"},
			wantField: "Format",
			wantTag:   "oneof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if tt.wantTag == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("len(Errors()) = %d, want 1 (%v)", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestTranslateError_Messages(t *testing.T) {
	verr := ValidateStruct(&selectionRequest{Titles: []string{"a", "b", "c", "d"}, TopN: 5})
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	want := "selected_movies must be at most 3 items"
	if got := verr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		verr := ValidateStruct(&selectionRequest{TopN: 0})
		apiErr := verr.ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
		}
		if apiErr.Details["field"] != "top_n" {
			t.Errorf("Details[field] = %v, want top_n", apiErr.Details["field"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&selectionRequest{TopN: 0, Format: "xml"})
		apiErr := verr.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "top_n:") || !strings.Contains(apiErr.Message, "Format:") {
			t.Errorf("Message = %q, want both fields", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Message != "Validation failed" {
			t.Errorf("Message = %q, want %q", apiErr.Message, "Validation failed")
		}
	})
}
