package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/negotiate"
	"github.com/banshee-data/sensorview/internal/sensorview"
	"github.com/banshee-data/sensorview/internal/testutil"
)

func writeProfile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadCapabilityProfile(t *testing.T) {
	path := writeProfile(t, "sim.json", `{
  "simulation_start_time": "35ms",
  "min_update_cycle_time": "50ms",
  "max_range": 150,
  "camera": {
    "channel_formats": ["MONO_U8_LIN", 6],
    "pixel_orders": ["left_right_bottom_top"],
    "supports_wavelength_data": true
  }
}`)

	cfg, err := LoadCapabilityProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 35*time.Millisecond, cfg.GetSimulationStartTime())
	assert.Equal(t, 50*time.Millisecond, cfg.GetMinUpdateCycleTime())
	assert.False(t, cfg.GetSupportsOmitStaticInformation())
	require.NotNil(t, cfg.Camera)
	assert.Equal(t, []sensorview.ChannelFormat{sensorview.ChannelFormatMonoU8Lin, sensorview.ChannelFormatRGBU8Lin}, cfg.Camera.ChannelFormats)
	assert.Equal(t, []sensorview.PixelOrder{sensorview.PixelOrderLeftRightBottomTop}, cfg.Camera.PixelOrders)
	assert.Nil(t, cfg.Radar)
}

func TestLoadCapabilityProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong extension", "sim.yaml", `{}`, ".json extension"},
		{"bad json", "sim.json", `{"max_range": }`, "failed to parse config JSON"},
		{"unknown channel format", "sim.json", `{"camera": {"channel_formats": ["CMYK"]}}`, "failed to parse config JSON"},
		{"negative range", "sim.json", `{"max_range": -1}`, "max_range must be non-negative"},
		{"bad duration", "sim.json", `{"min_update_cycle_time": "fast"}`, "invalid min_update_cycle_time"},
		{"fov too wide", "sim.json", `{"lidar": {"max_field_of_view_horizontal": 7}}`, "lidar.max_field_of_view_horizontal"},
		{"zero rays", "sim.json", `{"radar": {"max_rays_horizontal": 0}}`, "radar.max_rays_horizontal must be >= 1"},
		{"unknown format value", "sim.json", `{"camera": {"channel_formats": [0]}}`, "camera.channel_formats[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCapabilityProfile(writeProfile(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadCapabilityProfile_MissingFile(t *testing.T) {
	_, err := LoadCapabilityProfile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat config file")
}

func TestLoadCapabilityProfile_TooLarge(t *testing.T) {
	body := `{"max_range": 1` + strings.Repeat(" ", 1024*1024) + `}`
	_, err := LoadCapabilityProfile(writeProfile(t, "big.json", body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := &CapabilityProfile{
		MaxRange: common.Float64(-5),
		Radar:    &DetectorProfile{MaxInteractions: common.Uint32(0), EmitterFrequencies: []float64{-1}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"max_range", "radar.max_interactions", "radar.emitter_frequencies[0]"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestToCapability(t *testing.T) {
	cfg := &CapabilityProfile{
		SimulationStartTime: ptrString("35ms"),
		MinUpdateCycleTime:  ptrString("50ms"),
		MaxRange:            common.Float64(150),
		Radar: &DetectorProfile{
			MaxRaysHorizontal:      common.Uint32(256),
			SupportsAntennaDiagram: common.Bool(true),
		},
	}
	c := cfg.ToCapability()

	require.NotNil(t, c.SimulationStartTime)
	assert.Equal(t, common.TimestampFromSeconds(0.035), *c.SimulationStartTime)
	require.NotNil(t, c.MinUpdateCycleTime)
	assert.Equal(t, common.TimestampFromSeconds(0.050), *c.MinUpdateCycleTime)
	assert.Equal(t, 150.0, *c.MaxRange)
	require.NotNil(t, c.Radar)
	assert.True(t, c.Radar.SupportsAntennaDiagram)
	assert.False(t, c.Radar.SupportsWavelengthData)
	assert.Nil(t, c.Lidar)

	// The profile keeps no references into the capability.
	*c.MaxRange = 1
	assert.Equal(t, 150.0, *cfg.MaxRange)
}

func TestToCapability_NoStartTime(t *testing.T) {
	c := EmptyCapabilityProfile().ToCapability()
	assert.Nil(t, c.SimulationStartTime)
	assert.Nil(t, c.MinUpdateCycleTime)
	assert.Nil(t, c.Generic)
}

func TestDefaultProfile_ResolvesSampleRequest(t *testing.T) {
	cfg := MustLoadDefaultProfile()
	r := negotiate.NewResolver(cfg.ToCapability())

	granted := r.Resolve(testutil.SampleRequest())
	require.NoError(t, granted.ValidateGranted())
	assert.Len(t, granted.Camera, 1)
	assert.Equal(t, []sensorview.ChannelFormat{sensorview.ChannelFormatBayerRGGBU16Lin}, granted.Camera[0].ChannelFormat)

	first, ok := r.FirstUpdate(granted)
	require.True(t, ok)
	assert.Equal(t, common.TimestampFromSeconds(0.008), first)
}

func ptrString(v string) *string { return &v }
