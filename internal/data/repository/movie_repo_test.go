package repository

import "testing"

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"dune", "%dune%"},
		{"%", `%\%%`},
		{"100%_real", `%100\%\_real%`},
		{`back\slash`, `%back\\slash%`},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := containsPattern(tt.term); got != tt.want {
				t.Errorf("containsPattern(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}
