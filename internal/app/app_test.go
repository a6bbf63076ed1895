package app

import (
	"bookrater/internal/adapters/generator"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRater(t *testing.T) {
	tests := []struct {
		name    string
		setup   func()
		wantErr error
	}{
		{
			name: "openrouter",
			setup: func() {
				viper.Set("rating.provider", "openrouter")
				viper.Set("openrouter.api_key", "key")
			},
		},
		{
			name: "gemini",
			setup: func() {
				viper.Set("rating.provider", "gemini")
				viper.Set("gemini.api_key", "key")
			},
		},
		{
			name: "missing key",
			setup: func() {
				viper.Set("rating.provider", "gemini")
			},
			wantErr: generator.ErrMissingAPIKey,
		},
		{
			name: "unknown provider",
			setup: func() {
				viper.Set("rating.provider", "dalle")
			},
			wantErr: generator.ErrUnsupportedProvider,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			tc.setup()

			r, err := NewRater(t.Context())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}
}
