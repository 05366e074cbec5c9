package version

import (
	"strings"
	"testing"
)

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-01-01", expected: 0},
		{name: "next day after epoch", date: "2025-01-02", expected: 1},
		{name: "one year later", date: "2026-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1461},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2024-12-31", wantError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildIDFor(tt.date)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("buildIDFor(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	if s := String(); !strings.HasPrefix(s, "Build unknown") {
		t.Errorf("String() = %q, want unknown build", s)
	}

	BuildDate = "2025-01-11"
	s := String()
	if !strings.HasPrefix(s, "Build 10 (2025-01-11)") {
		t.Errorf("String() = %q", s)
	}
	if !strings.Contains(s, "ci[local]") {
		t.Errorf("String() = %q, want local ci fallback", s)
	}
}
