package options

import (
	"testing"

	"github.com/erraggy/oasmodels/modelerrors"
	"github.com/stretchr/testify/assert"
)

func TestRequireExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []Input
		wantErr string
	}{
		{"one set", []Input{{"file", true}, {"content", false}}, ""},
		{"none set", []Input{{"file", false}, {"content", false}}, "exactly one of file or content must be provided"},
		{"both set", []Input{{"file", true}, {"content", true}}, "exactly one of file or content must be provided"},
		{"three inputs", []Input{{"file", false}, {"content", false}, {"url", false}}, "exactly one of file, content, or url must be provided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireExactlyOne(tt.inputs...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, modelerrors.ErrConfig)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
