package handid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := New()
		require.NoError(t, Validate(id))
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		require.False(t, seen[id], "duplicate ID %s", id)
		seen[id] = true
	}
}

func TestIDsSortByTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	defer func() { now = time.Now }()

	now = func() time.Time { return base }
	earlier := New()

	now = func() time.Time { return base.Add(time.Second) }
	later := New()

	require.Less(t, earlier, later)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid", New(), true},
		{"too short", "abc", false},
		{"too long", New() + "0", false},
		{"bad first char", "z" + New()[1:], false},
		{"invalid char", New()[:25] + "u", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
