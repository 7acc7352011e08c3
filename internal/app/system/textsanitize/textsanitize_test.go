package textsanitize_test

import (
	"testing"

	"github.com/dalemusser/triplog/internal/app/system/textsanitize"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Client visit in Hamburg", "Client visit in Hamburg"},
		{"whitespace trimmed", "  Site survey  ", "Site survey"},
		{"tags stripped", "<b>Q3</b> kickoff", "Q3 kickoff"},
		{"script removed", "notes<script>alert('x')</script>", "notes"},
		{"ampersand survives", "R&D meeting", "R&D meeting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textsanitize.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanAll(t *testing.T) {
	got := textsanitize.CleanAll([]string{" Hamburg ", "<i></i>", "Berlin"})
	want := []string{"Hamburg", "Berlin"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
