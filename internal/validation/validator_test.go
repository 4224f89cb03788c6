// GenreMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/genrematch

package validation

import (
	"strings"
	"testing"
)

type queryStruct struct {
	Title string `query:"title" validate:"required,notblank,max=20"`
	K     int    `query:"k" validate:"gte=0,lte=100"`
	Mode  string `json:"mode,omitempty" validate:"omitempty,oneof=titles scores"`
}

type nestedStruct struct {
	Server struct {
		Port int `koanf:"port" validate:"min=1,max=65535"`
	} `koanf:"server"`
}

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() = nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     queryStruct
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{"valid", queryStruct{Title: "Heat (1995)", K: 5}, "", "", ""},
		{"valid zero k", queryStruct{Title: "Heat (1995)"}, "", "", ""},
		{"missing title", queryStruct{K: 5}, "title", "required", "title is required"},
		{"blank title", queryStruct{Title: "   ", K: 5}, "title", "notblank", "title must not be blank"},
		{"long title", queryStruct{Title: strings.Repeat("x", 21)}, "title", "max", "title must be at most 20 characters"},
		{"negative k", queryStruct{Title: "Heat", K: -1}, "k", "gte", "k must be greater than or equal to 0"},
		{"k too large", queryStruct{Title: "Heat", K: 101}, "k", "lte", "k must be less than or equal to 100"},
		{"bad mode", queryStruct{Title: "Heat", Mode: "json"}, "mode", "oneof", "mode must be one of: titles scores"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if tt.wantField == "" {
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
				t.Fatalf("len(Errors()) = %d, want 1: %v", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if errs[0].Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_NestedPath(t *testing.T) {
	var s nestedStruct
	s.Server.Port = 70000

	verr := ValidateStruct(&s)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := verr.Errors()[0].Field(); got != "server.port" {
		t.Errorf("Field() = %q, want server.port", got)
	}
	if got := verr.Errors()[0].Param(); got != "65535" {
		t.Errorf("Param() = %q, want 65535", got)
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		verr := ValidateStruct(&queryStruct{K: 5})
		apiErr := verr.ToAPIError()

		if apiErr.Code != CodeValidation {
			t.Errorf("Code = %q, want %q", apiErr.Code, CodeValidation)
		}
		if apiErr.Details["field"] != "title" {
			t.Errorf("Details[field] = %v, want title", apiErr.Details["field"])
		}
	})

	t.Run("multiple", func(t *testing.T) {
		verr := ValidateStruct(&queryStruct{K: 500})
		apiErr := verr.ToAPIError()

		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "title is required") || !strings.Contains(apiErr.Message, "k must be") {
			t.Errorf("Message = %q, want both failures", apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Code != CodeValidation || apiErr.Message != "Validation failed" {
			t.Errorf("ToAPIError() = %+v", apiErr)
		}
	})
}

func TestValidateStruct_NonStruct(t *testing.T) {
	verr := ValidateStruct("not a struct")
	if verr == nil {
		t.Fatal("ValidateStruct(string) = nil, want error")
	}
	if verr.Errors()[0].Field() != "unknown" {
		t.Errorf("Field() = %q, want unknown", verr.Errors()[0].Field())
	}
}
