// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/stylehive/internal/recommend"
)

type basketRequest struct {
	Products []string `json:"products" validate:"min=1,max=5,unique,dive,product"`
	N        int      `json:"n" validate:"gte=0,lte=100"`
	Model    string   `json:"model,omitempty" validate:"omitempty,oneof=mba hybrid"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     basketRequest
		wantField string
		wantTag   string
	}{
		{"valid", basketRequest{Products: []string{"White T-shirt", "Blue Jeans"}, N: 5}, "", ""},
		{"valid model", basketRequest{Products: []string{"Hoodie"}, Model: "hybrid"}, "", ""},
		{"empty basket", basketRequest{Products: nil}, "products", "min"},
		{"too many", basketRequest{Products: []string{"a", "b", "c", "d", "e", "f"}}, "products", "max"},
		{"duplicates", basketRequest{Products: []string{"Hoodie", "Hoodie"}}, "products", "unique"},
		{"blank product", basketRequest{Products: []string{"Hoodie", ""}}, "products[1]", "product"},
		{"padded product", basketRequest{Products: []string{" Hoodie"}}, "products[0]", "product"},
		{"n too large", basketRequest{Products: []string{"Hoodie"}, N: 101}, "n", "lte"},
		{"bad model", basketRequest{Products: []string{"Hoodie"}, Model: "svd"}, "model", "oneof"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
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
			got := verr.Errors()[0]
			if got.Field() != tt.wantField || got.Tag() != tt.wantTag {
				t.Errorf("error field/tag = %s/%s, want %s/%s", got.Field(), got.Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestValidateStruct_Hyperparameters(t *testing.T) {
	t.Parallel()

	params := recommend.DefaultConfig().Hyperparameters()
	if verr := ValidateStruct(&params); verr != nil {
		t.Fatalf("default hyperparameters rejected: %v", verr)
	}

	params.MinSupport = 0
	params.Rank = 0
	verr := ValidateStruct(&params)
	if verr == nil || len(verr.Errors()) != 2 {
		t.Fatalf("ValidateStruct() = %v, want 2 errors", verr)
	}
	if msg := verr.Errors()[0].Error(); msg != "min_support must be greater than 0" {
		t.Errorf("message = %q", msg)
	}
	if msg := verr.Errors()[1].Error(); msg != "rank must be greater than or equal to 1" {
		t.Errorf("message = %q", msg)
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&basketRequest{Products: []string{"Hoodie"}, N: -1}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Message != "n must be greater than or equal to 0" {
		t.Errorf("single = %+v", single)
	}
	if single.Details["field"] != "n" || single.Details["tag"] != "gte" {
		t.Errorf("single details = %v", single.Details)
	}

	multi := ValidateStruct(&basketRequest{N: 500}).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("multi details = %v", multi.Details)
	}
	if !strings.Contains(multi.Message, "products must be at least 1 items") || !strings.Contains(multi.Message, "; ") {
		t.Errorf("multi message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty = %+v", empty)
	}
}

func TestValidProductName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"Leather Jacket", true},
		{"Café Crème", true},
		{"", false},
		{"Hoodie ", false},
		{"Bad\x00Name", false},
		{"Tab\tName", false},
		{strings.Repeat("x", 128), true},
		{strings.Repeat("x", 129), false},
	}
	for _, tt := range tests {
		if got := ValidProductName(tt.name); got != tt.want {
			t.Errorf("ValidProductName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
