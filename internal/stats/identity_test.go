package stats

import "testing"

func TestResolveName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Li Lei", "Li Lei"},
		{"surrounding whitespace", "  Li Lei ", "Li Lei"},
		{"inner runs collapse", "Li \t Lei", "Li Lei"},
		{"distinct spellings stay distinct", "Lilei", "Lilei"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveName(tt.raw); got != tt.want {
				t.Errorf("ResolveName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
