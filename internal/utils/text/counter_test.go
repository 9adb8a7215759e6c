package text_test

import (
	"testing"

	"github.com/mcarbmont89/full-congreso-sub000/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII", input: "hello", expected: 5},
		{name: "accents", input: "señal", expected: 5},
		{name: "emoji", input: "hola👋", expected: 5},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Sesión Ordinaria: 2024", want: "sesion-ordinaria-2024"},
		{in: "  Señal   abierta!! ", want: "senal-abierta"},
		{in: "Cámara de Diputados / Senado", want: "camara-de-diputados-senado"},
		{in: "---", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := text.Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short text untouched", in: "Hola mundo", max: 20, want: "Hola mundo"},
		{name: "cuts at word boundary", in: "La sesión comenzó puntual hoy", max: 20, want: "La sesión comenzó…"},
		{name: "no limit", in: "abc", max: 0, want: "abc"},
		{name: "single long word", in: "abcdefghij", max: 4, want: "abcd…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}
