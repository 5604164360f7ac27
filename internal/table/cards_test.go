package table_test

import (
	"testing"

	"github.com/lox/tablescribe/internal/table"
)

func TestNormalizeCard(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10h", "Th"},
		{"10H", "Th"},
		{"ah", "Ah"},
		{"As", "As"},
		{"KD", "Kd"},
		{"9c", "9c"},
		{"??", "??"},
		{" Qs ", "Qs"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := table.NormalizeCard(tt.in); got != tt.want {
			t.Fatalf("NormalizeCard(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeCards(t *testing.T) {
	got := table.NormalizeCards([]string{"10s", "ah", "KD"})
	want := []string{"Ts", "Ah", "Kd"}
	if len(got) != len(want) {
		t.Fatalf("got %d cards, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("card %d: got %q want %q", i, got[i], want[i])
		}
	}
	if table.NormalizeCards(nil) != nil {
		t.Fatal("expected nil for empty input")
	}
}
