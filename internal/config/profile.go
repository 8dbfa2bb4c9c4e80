package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/negotiate"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

// DefaultProfilePath is the path to the bundled simulator capability profile.
const DefaultProfilePath = "config/capability.defaults.json"

// CapabilityProfile describes a simulator's capabilities as loaded from
// JSON. Omitted limits mean "unlimited" and omitted technologies are not
// modelled.
type CapabilityProfile struct {
	Version *common.InterfaceVersion `json:"version,omitempty"`

	SimulationStartTime *string `json:"simulation_start_time,omitempty"` // duration string like "12.5s"
	MinUpdateCycleTime  *string `json:"min_update_cycle_time,omitempty"` // duration string like "10ms"

	MaxRange                 *float64 `json:"max_range,omitempty"`
	MaxFieldOfViewHorizontal *float64 `json:"max_field_of_view_horizontal,omitempty"`
	MaxFieldOfViewVertical   *float64 `json:"max_field_of_view_vertical,omitempty"`

	SupportsOmitStaticInformation *bool `json:"supports_omit_static_information,omitempty"`

	Generic    *DetectorProfile `json:"generic,omitempty"`
	Radar      *DetectorProfile `json:"radar,omitempty"`
	Lidar      *DetectorProfile `json:"lidar,omitempty"`
	Camera     *DetectorProfile `json:"camera,omitempty"`
	Ultrasonic *DetectorProfile `json:"ultrasonic,omitempty"`
}

// DetectorProfile limits one technology.
type DetectorProfile struct {
	MaxFieldOfViewHorizontal *float64 `json:"max_field_of_view_horizontal,omitempty"`
	MaxFieldOfViewVertical   *float64 `json:"max_field_of_view_vertical,omitempty"`

	MaxRaysHorizontal      *uint32   `json:"max_rays_horizontal,omitempty"`
	MaxRaysVertical        *uint32   `json:"max_rays_vertical,omitempty"`
	MaxInteractions        *uint32   `json:"max_interactions,omitempty"`
	EmitterFrequencies     []float64 `json:"emitter_frequencies,omitempty"`
	SupportsAntennaDiagram *bool     `json:"supports_antenna_diagram,omitempty"`
	MaxLidarPixels         *uint32   `json:"max_lidar_pixels,omitempty"`

	MaxPixelsHorizontal    *uint32                    `json:"max_pixels_horizontal,omitempty"`
	MaxPixelsVertical      *uint32                    `json:"max_pixels_vertical,omitempty"`
	MaxSamplesPerPixel     *uint32                    `json:"max_samples_per_pixel,omitempty"`
	ChannelFormats         []sensorview.ChannelFormat `json:"channel_formats,omitempty"`
	PixelOrders            []sensorview.PixelOrder    `json:"pixel_orders,omitempty"`
	SupportsWavelengthData *bool                      `json:"supports_wavelength_data,omitempty"`
}

// EmptyCapabilityProfile returns a profile with every field unset.
func EmptyCapabilityProfile() *CapabilityProfile {
	return &CapabilityProfile{}
}

// LoadCapabilityProfile loads a CapabilityProfile from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadCapabilityProfile(path string) (*CapabilityProfile, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyCapabilityProfile()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultProfile loads DefaultProfilePath, searching the current
// directory and its parents up to the repository root. Panics on failure;
// intended for test setup.
func MustLoadDefaultProfile() *CapabilityProfile {
	candidates := []string{
		DefaultProfilePath,
		"../../" + DefaultProfilePath,    // from internal/config/
		"../../../" + DefaultProfilePath, // from cmd/sensorview/
	}
	for _, path := range candidates {
		if cfg, err := LoadCapabilityProfile(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultProfilePath + " - run tests from repository root")
}

// Validate checks that the profile values are usable. All violations are
// reported together.
func (c *CapabilityProfile) Validate() error {
	var errs []error

	for _, d := range []struct {
		name string
		v    *string
	}{
		{"simulation_start_time", c.SimulationStartTime},
		{"min_update_cycle_time", c.MinUpdateCycleTime},
	} {
		if d.v == nil || *d.v == "" {
			continue
		}
		v, err := time.ParseDuration(*d.v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %s '%s': %w", d.name, *d.v, err))
		} else if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %s", d.name, *d.v))
		}
	}

	if c.MaxRange != nil && !(*c.MaxRange >= 0) {
		errs = append(errs, fmt.Errorf("max_range must be non-negative, got %f", *c.MaxRange))
	}
	errs = append(errs, checkFOV("", c.MaxFieldOfViewHorizontal, c.MaxFieldOfViewVertical)...)

	for _, t := range []struct {
		name string
		p    *DetectorProfile
	}{
		{"generic", c.Generic},
		{"radar", c.Radar},
		{"lidar", c.Lidar},
		{"camera", c.Camera},
		{"ultrasonic", c.Ultrasonic},
	} {
		if t.p != nil {
			errs = append(errs, t.p.validate(t.name+".")...)
		}
	}
	return errors.Join(errs...)
}

func checkFOV(prefix string, h, v *float64) []error {
	var errs []error
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"max_field_of_view_horizontal", h},
		{"max_field_of_view_vertical", v},
	} {
		if f.v != nil && !(*f.v >= 0 && *f.v <= 2*math.Pi) {
			errs = append(errs, fmt.Errorf("%s%s must be between 0 and 2π, got %f", prefix, f.name, *f.v))
		}
	}
	return errs
}

func (d *DetectorProfile) validate(prefix string) []error {
	errs := checkFOV(prefix, d.MaxFieldOfViewHorizontal, d.MaxFieldOfViewVertical)
	for _, f := range []struct {
		name string
		v    *uint32
	}{
		{"max_rays_horizontal", d.MaxRaysHorizontal},
		{"max_rays_vertical", d.MaxRaysVertical},
		{"max_interactions", d.MaxInteractions},
		{"max_pixels_horizontal", d.MaxPixelsHorizontal},
		{"max_pixels_vertical", d.MaxPixelsVertical},
		{"max_samples_per_pixel", d.MaxSamplesPerPixel},
	} {
		if f.v != nil && *f.v < 1 {
			errs = append(errs, fmt.Errorf("%s%s must be >= 1, got %d", prefix, f.name, *f.v))
		}
	}
	for i, hz := range d.EmitterFrequencies {
		if !(hz >= 0) {
			errs = append(errs, fmt.Errorf("%semitter_frequencies[%d] must be non-negative, got %f", prefix, i, hz))
		}
	}
	for i, cf := range d.ChannelFormats {
		if !cf.IsValid() || cf == sensorview.ChannelFormatUnknown {
			errs = append(errs, fmt.Errorf("%schannel_formats[%d]: %s is not a usable channel format", prefix, i, cf))
		}
	}
	for i, po := range d.PixelOrders {
		if !po.IsValid() {
			errs = append(errs, fmt.Errorf("%spixel_orders[%d]: %s is not a pixel order", prefix, i, po))
		}
	}
	return errs
}

func parseDuration(s *string) time.Duration {
	if s == nil || *s == "" {
		return 0
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return 0 // default on parse error
	}
	return d
}

// GetSimulationStartTime returns the real simulation start time, or zero.
func (c *CapabilityProfile) GetSimulationStartTime() time.Duration {
	return parseDuration(c.SimulationStartTime)
}

// GetMinUpdateCycleTime returns the shortest supported update period, or
// zero when there is no minimum.
func (c *CapabilityProfile) GetMinUpdateCycleTime() time.Duration {
	return parseDuration(c.MinUpdateCycleTime)
}

// GetSupportsOmitStaticInformation returns the flag or the default.
func (c *CapabilityProfile) GetSupportsOmitStaticInformation() bool {
	if c.SupportsOmitStaticInformation == nil {
		return false // default: always send static ground truth
	}
	return *c.SupportsOmitStaticInformation
}

// ToCapability converts the profile into the resolver's capability.
func (c *CapabilityProfile) ToCapability() negotiate.Capability {
	out := negotiate.Capability{
		Version:                       common.ClonePtr(c.Version),
		MaxRange:                      common.CloneFloat64(c.MaxRange),
		MaxFieldOfViewHorizontal:      common.CloneFloat64(c.MaxFieldOfViewHorizontal),
		MaxFieldOfViewVertical:        common.CloneFloat64(c.MaxFieldOfViewVertical),
		SupportsOmitStaticInformation: c.GetSupportsOmitStaticInformation(),
		Generic:                       c.Generic.toCapability(),
		Radar:                         c.Radar.toCapability(),
		Lidar:                         c.Lidar.toCapability(),
		Camera:                        c.Camera.toCapability(),
		Ultrasonic:                    c.Ultrasonic.toCapability(),
	}
	if c.SimulationStartTime != nil {
		ts := common.TimestampFromDuration(c.GetSimulationStartTime())
		out.SimulationStartTime = &ts
	}
	if d := c.GetMinUpdateCycleTime(); d > 0 {
		ts := common.TimestampFromDuration(d)
		out.MinUpdateCycleTime = &ts
	}
	return out
}

func (d *DetectorProfile) toCapability() *negotiate.DetectorCapability {
	if d == nil {
		return nil
	}
	return &negotiate.DetectorCapability{
		MaxFieldOfViewHorizontal: common.CloneFloat64(d.MaxFieldOfViewHorizontal),
		MaxFieldOfViewVertical:   common.CloneFloat64(d.MaxFieldOfViewVertical),
		MaxRaysHorizontal:        common.CloneUint32(d.MaxRaysHorizontal),
		MaxRaysVertical:          common.CloneUint32(d.MaxRaysVertical),
		MaxInteractions:          common.CloneUint32(d.MaxInteractions),
		EmitterFrequencies:       append([]float64(nil), d.EmitterFrequencies...),
		SupportsAntennaDiagram:   d.SupportsAntennaDiagram != nil && *d.SupportsAntennaDiagram,
		MaxLidarPixels:           common.CloneUint32(d.MaxLidarPixels),
		MaxPixelsHorizontal:      common.CloneUint32(d.MaxPixelsHorizontal),
		MaxPixelsVertical:        common.CloneUint32(d.MaxPixelsVertical),
		MaxSamplesPerPixel:       common.CloneUint32(d.MaxSamplesPerPixel),
		ChannelFormats:           append([]sensorview.ChannelFormat(nil), d.ChannelFormats...),
		PixelOrders:              append([]sensorview.PixelOrder(nil), d.PixelOrders...),
		SupportsWavelengthData:   d.SupportsWavelengthData != nil && *d.SupportsWavelengthData,
	}
}
