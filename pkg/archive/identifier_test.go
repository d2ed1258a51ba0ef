package archive

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		ident   string
		wantErr bool
	}{
		{name: "simple", ident: "test_item", wantErr: false},
		{name: "with dashes and periods", ident: "a-b.c_d", wantErr: false},
		{name: "starts with digit", ident: "7inch-records", wantErr: false},
		{name: "single character", ident: "x", wantErr: false},
		{name: "exactly 100 chars", ident: "a" + strings.Repeat("b", 99), wantErr: false},
		{name: "empty", ident: "", wantErr: true},
		{name: "over 100 chars", ident: "a" + strings.Repeat("b", 100), wantErr: true},
		{name: "starts with underscore", ident: "_private", wantErr: true},
		{name: "starts with dash", ident: "-item", wantErr: true},
		{name: "contains space", ident: "my item", wantErr: true},
		{name: "contains slash", ident: "a/b", wantErr: true},
		{name: "non-ascii", ident: "café", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.ident)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.ident, err, tt.wantErr)
			}
		})
	}
}
