package utils

import (
	"testing"

	"github.com/and161185/bookdesk/internal/model"
)

func TestClassifyIdentifier(t *testing.T) {
	tests := []struct {
		input string
		kind  model.IdentifierKind
	}{
		{"103.4.145.2", model.IdentifierIP},
		{"2001:db8::1", model.IdentifierIP},
		{"01711000000", model.IdentifierPhone},
		{"+880 1711-000000", model.IdentifierPhone},
		{"dev_8f2c1a9b", model.IdentifierDevice},
		{"5f8d0d55b54764421b7156c3", model.IdentifierDevice},
		{"123", model.IdentifierDevice},
		{"", model.IdentifierDevice},
	}

	for _, tt := range tests {
		if got := ClassifyIdentifier(tt.input); got != tt.kind {
			t.Errorf("ClassifyIdentifier(%q) = %v; want %v", tt.input, got, tt.kind)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"01711000000", "01711000000"},
		{"+8801711000000", "01711000000"},
		{"017 11-00 00 00", "01711000000"},
		{"abc", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}
