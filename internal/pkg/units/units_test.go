package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestToDisplayUnitsMetricIsIdentity(t *testing.T) {
	got := ToDisplayUnits(fp(12345.6), Metric, 0)
	require.NotNil(t, got)
	assert.Equal(t, 12345.6, *got)
}

func TestToDisplayUnitsImperial(t *testing.T) {
	got := ToDisplayUnits(fp(1000), Imperial, 0)
	require.NotNil(t, got)
	assert.Equal(t, 621.0, *got)

	got = ToDisplayUnits(fp(1000), Imperial, 2)
	require.NotNil(t, got)
	assert.Equal(t, 621.37, *got)
}

func TestNilPropagates(t *testing.T) {
	assert.Nil(t, ToDisplayUnits(nil, Imperial, 0))
	assert.Nil(t, ToStorageUnits(nil, Metric, 0))
}

func TestImperialRoundTrip(t *testing.T) {
	for _, km := range []float64{1, 42, 1000, 12345, 99999.5} {
		display := ToDisplayUnits(fp(km), Imperial, 4)
		require.NotNil(t, display)
		back := ToStorageUnits(display, Imperial, 4)
		require.NotNil(t, back)
		assert.InDelta(t, km, *back, 0.05, "round trip for %v km", km)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "N/A", Format(nil, Metric, 0))
	assert.Equal(t, "5000 km", Format(fp(5000), Metric, 0))
	assert.Equal(t, "3107 mi", Format(fp(3106.86), Imperial, 0))
	assert.Equal(t, "13 km", Format(fp(12.5), Metric, 0))
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{"plain number", "12000", fp(12000)},
		{"decimal", "123.5", fp(123.5)},
		{"with unit suffix", "12,050 km", fp(12050)},
		{"currency style", "1,234.56", fp(1234.56)},
		{"empty", "", nil},
		{"no digits", "soon", nil},
		{"multiple dots", "1.2.3", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInput(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
