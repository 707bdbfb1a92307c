package slug

import (
	"regexp"
	"strings"
	"testing"
)

func TestAssignShape(t *testing.T) {
	got, err := Assign("Joe's Café")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !regexp.MustCompile(`^joes-caf-[a-z0-9]{6}$`).MatchString(got) {
		t.Fatalf("unexpected slug %q", got)
	}
}

func TestAssignEmptyName(t *testing.T) {
	got, err := Assign("  ***  ")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !regexp.MustCompile(`^[a-z0-9]{6}$`).MatchString(got) {
		t.Fatalf("expected bare suffix for empty sanitized name, got %q", got)
	}
}

func TestAssignSuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		got, err := Assign("Acme")
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if !strings.HasPrefix(got, "acme-") {
			t.Fatalf("unexpected prefix in %q", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Fatalf("suffix never varied across assignments")
	}
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Joe's Café #1", "joes-caf-1"},
		{"  Plain Name  ", "plain-name"},
		{"MANY    spaces", "many-spaces"},
		{"already-hyphenated", "already-hyphenated"},
		{"***", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
