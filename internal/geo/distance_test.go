package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_IdenticalPointsAreZero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-23.5505, -46.6333},
		{90, 0},
		{-90, 180},
	}
	for _, p := range points {
		assert.Zero(t, Distance(p[0], p[1], p[0], p[1]))
	}
}

func TestDistance_Symmetric(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"sao paulo to rio", -23.5505, -46.6333, -22.9068, -43.1729},
		{"across equator", -1.0, 10.0, 1.0, -10.0},
		{"near poles", 89.0, 0.0, -89.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d1 := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			d2 := Distance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			assert.InDelta(t, d1, d2, 1e-9)
		})
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// São Paulo to Rio de Janeiro is roughly 360 km.
	d := Distance(-23.5505, -46.6333, -22.9068, -43.1729)
	require.InDelta(t, 360, d, 5)

	// One degree of latitude at the equator is about 111 km.
	d = Distance(0, 0, 1, 0)
	require.InDelta(t, 111.19, d, 0.1)
}
