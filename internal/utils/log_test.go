package utils

import "testing"

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "non-positive limit hides the value",
			input:  `{"query":{}}`,
			limit:  0,
			expect: "",
		},
		{
			name:   "short request body is kept",
			input:  `{"size":10}`,
			limit:  50,
			expect: `{"size":10}`,
		},
		{
			name:   "long request body is cut",
			input:  `{"query":{"bool":{}}}`,
			limit:  9,
			expect: `{"query":...`,
		},
		{
			name:   "counts runes, not bytes",
			input:  "  Zürich München  ",
			limit:  6,
			expect: "Zürich...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
