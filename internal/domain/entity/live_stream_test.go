package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStreamStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    StreamStatus
		wantErr bool
	}{
		{in: "live", want: StreamStatusLive},
		{in: "signal_open", want: StreamStatusSignalOpen},
		{in: " RECESS ", want: StreamStatusRecess},
		{in: "offline", want: StreamStatusOffline},
		{in: "", wantErr: true},
		{in: "paused", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStreamStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidationFailed))
				assert.Contains(t, err.Error(), "must be one of")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStreamStatus_Label(t *testing.T) {
	assert.Equal(t, "EN VIVO", StreamStatusLive.Label())
	assert.Equal(t, "SEÑAL ABIERTA", StreamStatusSignalOpen.Label())
	assert.Equal(t, "EN RECESO", StreamStatusRecess.Label())
	assert.Equal(t, "FUERA DEL AIRE", StreamStatusOffline.Label())
	assert.Equal(t, "FUERA DEL AIRE", StreamStatus("unknown").Label())
}

func TestStreamStatus_IsPublic(t *testing.T) {
	for _, s := range StreamStatuses() {
		want := s != StreamStatusOffline
		assert.Equal(t, want, s.IsPublic(), "status %s", s)
	}
	assert.ElementsMatch(t,
		[]StreamStatus{StreamStatusLive, StreamStatusRecess, StreamStatusSignalOpen},
		PublicStreamStatuses())
}

func TestStatusChange_Changed(t *testing.T) {
	assert.True(t, StatusChange{Previous: StreamStatusOffline, Current: StreamStatusLive}.Changed())
	assert.False(t, StatusChange{Previous: StreamStatusLive, Current: StreamStatusLive}.Changed())
}
