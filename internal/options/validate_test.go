package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{"none set", []bool{false, false}, "exactly one of file or content must be provided (got 0)"},
		{"first set", []bool{true, false}, ""},
		{"second set", []bool{false, true}, ""},
		{"both set", []bool{true, true}, "exactly one of file or content must be provided (got 2)"},
		{"no sources", nil, "exactly one of file or content must be provided (got 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource("file or content", tt.sources...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
