package command

import (
	"bookrater/internal/core/domain"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageRespond(t *testing.T) {
	tests := []struct {
		name    string
		added   int
		sendErr error
		want    string
		wantErr bool
	}{
		{
			name:  "reports count",
			added: 3,
			want:  "Books rated today within ChatID 7: 3.",
		},
		{
			name:    "send fails",
			added:   0,
			sendErr: errors.New("mock error"),
			want:    "Books rated today within ChatID 7: 0.",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := &MockTextSender{err: tc.sendErr}
			usage := NewUsage(&MockTracker{added: tc.added}, ts, "/usage")
			assert.Equal(t, "/usage", usage.GetCommand())

			err := usage.Respond(t.Context(), time.Minute, &domain.Message{ChatID: 7})
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, ts.LastMessage())
		})
	}
}
