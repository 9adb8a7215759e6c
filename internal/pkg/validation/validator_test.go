package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
)

type sample struct {
	Title   string `json:"title" validate:"required,max=10"`
	Chamber string `json:"chamber" validate:"omitempty,oneof=diputados senado"`
	Limit   int    `json:"limit" validate:"gte=1,lte=24"`
	Email   string `json:"email" validate:"omitempty,email"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		in        sample
		wantField string
		wantMsg   string
	}{
		{name: "valid", in: sample{Title: "ok", Limit: 3}},
		{name: "missing title", in: sample{Limit: 3}, wantField: "title", wantMsg: "title is required"},
		{name: "title too long", in: sample{Title: "abcdefghijk", Limit: 3}, wantField: "title", wantMsg: "title is too long (max 10 characters)"},
		{name: "bad chamber", in: sample{Title: "a", Chamber: "lords", Limit: 3}, wantField: "chamber", wantMsg: "chamber must be one of diputados, senado"},
		{name: "limit low", in: sample{Title: "a"}, wantField: "limit", wantMsg: "limit must be at least 1"},
		{name: "limit high", in: sample{Title: "a", Limit: 30}, wantField: "limit", wantMsg: "limit must be at most 24"},
		{name: "bad email", in: sample{Title: "a", Limit: 1, Email: "nope"}, wantField: "email", wantMsg: "email must be a valid email address"},
		{name: "bad color", in: sample{Title: "a", Limit: 1, Color: "blue"}, wantField: "color", wantMsg: "color must be a hex color such as #004b87"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Struct(tt.in)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var ve *entity.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestValidator_Singleton(t *testing.T) {
	assert.Same(t, validation.Validator(), validation.Validator())
}
