package normalize

import (
	"reflect"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dev@example.com", "dev@example.com"},
		{"DEV@EXAMPLE.COM", "dev@example.com"},
		{"  Dev@Example.Com  ", "dev@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ada Lovelace", "Ada Lovelace"},
		{"  Ada Lovelace  ", "Ada Lovelace"},
		{"", ""},
		{"MIXED case Name", "MIXED case Name"}, // Name preserves case
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Name(tt.input); got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"trims", []string{" Go ", "MongoDB"}, []string{"Go", "MongoDB"}},
		{"drops blanks", []string{"Go", "  ", ""}, []string{"Go"}},
		{"all blank", []string{" ", ""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strings(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Strings(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
