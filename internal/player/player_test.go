package player

import (
	"math"
	"testing"
)

func TestGainToVolume(t *testing.T) {
	tests := []struct {
		gain float64
		want float64
	}{
		{gain: 1, want: 0},
		{gain: 0.5, want: -2},
		{gain: 0.25, want: -4},
		{gain: 0, want: -10},
		{gain: -1, want: -10},
	}

	for _, tt := range tests {
		if got := gainToVolume(tt.gain); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("gainToVolume(%v) = %v, want %v", tt.gain, got, tt.want)
		}
	}
}

func TestSetVolumeBeforePlay(t *testing.T) {
	p := New(0.7)
	// Must not panic with no active stream.
	p.SetVolume(0.2)
	if p.Playing() {
		t.Error("Playing() = true before Play")
	}
}
