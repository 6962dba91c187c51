package server

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "hello there", "hello there", false},
		{"trims and collapses whitespace", "  hello    there  ", "hello there", false},
		{"empty", "   ", "", true},
		{"too long", strings.Repeat("a", maxAnswerLength+1), "", true},
		{"punctuation allowed", "wait... what?!", "wait... what?!", false},
		{"non-ascii rejected", "ünicode", "", true},
		{"tabs collapse to spaces", "a\tb", "a b", false},
		{"angle brackets rejected", "<script>", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := validateAnswer(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateNameLength(t *testing.T) {
	if _, err := validateName(strings.Repeat("a", maxNameLength)); err != nil {
		t.Errorf("name at the limit should pass: %v", err)
	}
	if _, err := validateName(strings.Repeat("a", maxNameLength+1)); err == nil {
		t.Error("name over the limit should fail")
	}
}
