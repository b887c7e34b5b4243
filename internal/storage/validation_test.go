package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	assert.NoError(t, validateContext(context.Background()))
	assert.ErrorIs(t, validateContext(nil), ErrNilContext) //nolint:staticcheck // testing nil context
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid", value: "transactions"},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: " \t\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.value, "key")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyString)
				assert.Contains(t, err.Error(), "key")
				return
			}
			assert.NoError(t, err)
		})
	}
}
