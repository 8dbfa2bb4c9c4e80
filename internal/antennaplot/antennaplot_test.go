package antennaplot

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/sensorview"
	"github.com/banshee-data/sensorview/internal/testutil"
)

func entry(hDeg, vDeg, db float64) sensorview.AntennaDiagramEntry {
	return sensorview.AntennaDiagramEntry{
		HorizontalAngle: common.Float64(hDeg * math.Pi / 180),
		VerticalAngle:   common.Float64(vDeg * math.Pi / 180),
		Response:        common.Float64(db),
	}
}

func TestCollect_GroupsAndSorts(t *testing.T) {
	in := []sensorview.AntennaDiagramEntry{
		entry(30, 5, -6),
		entry(-30, 0, -6),
		entry(0, 0, 0),
		entry(-30, 5, -8),
		{HorizontalAngle: common.Float64(0)}, // no response
		{HorizontalAngle: common.Float64(0.5), Response: common.Float64(-3)},
	}
	got := Collect("tx", in)
	require.Len(t, got, 2)

	assert.Equal(t, 0.0, got[0].VerticalAngle)
	require.Len(t, got[0].Points, 3)
	assert.InDelta(t, -30, got[0].Points[0].X, 1e-9)
	assert.InDelta(t, 0, got[0].Points[1].X, 1e-9)
	assert.InDelta(t, 0.5*180/math.Pi, got[0].Points[2].X, 1e-9)

	assert.InDelta(t, 5*math.Pi/180, got[1].VerticalAngle, 1e-12)
	require.Len(t, got[1].Points, 2)
	assert.Equal(t, -8.0, got[1].Points[0].Y)
	assert.Equal(t, "tx", got[1].Diagram)

	// Input order is untouched.
	assert.Equal(t, 30*math.Pi/180, *in[0].HorizontalAngle)
}

func TestPlot_NoDiagram(t *testing.T) {
	_, err := Plot(sensorview.RadarSensorViewConfiguration{})
	assert.True(t, errors.Is(err, ErrNoDiagram))
}

func TestSave(t *testing.T) {
	radar := testutil.SampleRequest().Radar[0]
	dir := t.TempDir()

	path, err := Save(radar, dir)
	require.NoError(t, err)
	assert.Equal(t, "radar_2_antenna.png", FileName(radar))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFileName_NoSensorID(t *testing.T) {
	assert.Equal(t, "radar_unknown_antenna.png", FileName(sensorview.RadarSensorViewConfiguration{}))
}

func TestGenerateColors(t *testing.T) {
	colors := generateColors(3)
	require.Len(t, colors, 3)
	assert.NotEqual(t, colors[0], colors[1])
	assert.Empty(t, generateColors(0))
}
