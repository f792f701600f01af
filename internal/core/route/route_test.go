package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrooklinJazz/idomatic-redux/internal/core/state"
)

func TestFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    state.Filter
		wantErr bool
	}{
		{"empty path", "", state.FilterAll, false},
		{"root path", "/", state.FilterAll, false},
		{"active with slash", "/active", state.FilterActive, false},
		{"active bare", "active", state.FilterActive, false},
		{"completed with slash", "/completed", state.FilterCompleted, false},
		{"all explicit", "/all", state.FilterAll, false},
		{"trailing slash", "/completed/", state.FilterCompleted, false},
		{"unknown segment", "/archived", "", true},
		{"nested path", "/active/extra", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
