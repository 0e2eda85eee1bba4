package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"hours and minutes", "1 hora e 30 minutos", 90},
		{"hours only", "2 horas", 120},
		{"minutes only", "45 minutos", 45},
		{"singular minute", "1 minuto", 1},
		{"no space before unit", "3horas", 180},
		{"empty", "", 0},
		{"free text without units", "o dia inteiro", 0},
		{"unmatched hour component ignored", "meia hora e 15 minutos", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestFormatDuration_RoundTrip(t *testing.T) {
	for h := 0; h <= 10; h++ {
		for m := 0; m < 60; m++ {
			s := FormatDuration(h, m)
			require.Equal(t, h*60+m, ParseDuration(s), "h=%d m=%d formatted=%q", h, m, s)
		}
	}
}

func TestDurationOptions_AllParseable(t *testing.T) {
	opts := DurationOptions()
	require.Len(t, opts, 16)
	require.Equal(t, "30 minutos", opts[0])
	require.Equal(t, "8 horas", opts[len(opts)-1])
	for i, opt := range opts {
		assert.Equal(t, (i+1)*30, ParseDuration(opt))
	}
}
