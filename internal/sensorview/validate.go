package sensorview

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/sensorview/internal/common"
)

// validator accumulates bound violations under a field path prefix.
type validator struct {
	errs []error
}

func (v *validator) addf(format string, args ...interface{}) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func (v *validator) minUint32(path string, p *uint32, min uint32) {
	if p != nil && *p < min {
		v.addf("%s must be >= %d, got %d", path, min, *p)
	}
}

func (v *validator) minFloat(path string, p *float64, min float64) {
	if p == nil {
		return
	}
	if math.IsNaN(*p) || *p < min {
		v.addf("%s must be >= %g, got %g", path, min, *p)
	}
}

func (v *validator) fieldOfView(path string, p *float64) {
	if p == nil {
		return
	}
	if math.IsNaN(*p) || *p < 0 || *p > 2*math.Pi {
		v.addf("%s must be between 0 and 2π, got %g", path, *p)
	}
}

func (v *validator) timestamp(path string, t *common.Timestamp) {
	if t == nil {
		return
	}
	if t.Nanos >= 1_000_000_000 {
		v.addf("%s.nanos must be < 1e9, got %d", path, t.Nanos)
	}
	if t.Seconds < 0 {
		v.addf("%s must not be negative, got %s", path, t)
	}
}

func (v *validator) base(path string, b DetectorBase) {
	v.fieldOfView(path+".field_of_view_horizontal", b.FieldOfViewHorizontal)
	v.fieldOfView(path+".field_of_view_vertical", b.FieldOfViewVertical)
}

func (v *validator) rays(path string, p RayTracingParams) {
	v.minUint32(path+".number_of_rays_horizontal", p.NumberOfRaysHorizontal, 1)
	v.minUint32(path+".number_of_rays_vertical", p.NumberOfRaysVertical, 1)
	v.minUint32(path+".max_number_of_interactions", p.MaxNumberOfInteractions, 1)
	v.minFloat(path+".emitter_frequency", p.EmitterFrequency, 0)
}

// Validate checks every populated field against its documented bound and
// returns all violations joined, or nil. Unpopulated fields are never an
// error. Validation is a tool for producers and consumers; nothing in this
// module calls it implicitly.
func (c *SensorViewConfiguration) Validate() error {
	if c == nil {
		return nil
	}
	v := &validator{}
	v.fieldOfView("field_of_view_horizontal", c.FieldOfViewHorizontal)
	v.fieldOfView("field_of_view_vertical", c.FieldOfViewVertical)
	v.minFloat("range", c.Range, 0)
	v.timestamp("update_cycle_time", c.UpdateCycleTime)
	v.timestamp("update_cycle_offset", c.UpdateCycleOffset)
	v.timestamp("simulation_start_time", c.SimulationStartTime)
	if c.UpdateCycleTime != nil && c.UpdateCycleTime.Nanoseconds() <= 0 {
		v.addf("update_cycle_time must be > 0, got %s", c.UpdateCycleTime)
	}

	for i, g := range c.Generic {
		v.base(fmt.Sprintf("generic[%d]", i), g.DetectorBase)
	}
	for i, r := range c.Radar {
		path := fmt.Sprintf("radar[%d]", i)
		v.base(path, r.DetectorBase)
		v.rays(path, r.RayTracingParams)
	}
	for i, l := range c.Lidar {
		path := fmt.Sprintf("lidar[%d]", i)
		v.base(path, l.DetectorBase)
		v.rays(path, l.RayTracingParams)
		v.lidarPixels(path, l)
	}
	for i, cam := range c.Camera {
		v.camera(fmt.Sprintf("camera[%d]", i), cam)
	}
	for i, u := range c.Ultrasonic {
		v.base(fmt.Sprintf("ultrasonic[%d]", i), u.DetectorBase)
	}
	return v.err()
}

// ValidateGranted applies Validate plus the rules that only hold for a
// simulator's answer: every preference list holds at most one entry.
func (c *SensorViewConfiguration) ValidateGranted() error {
	if c == nil {
		return nil
	}
	errs := []error{c.Validate()}
	for i, cam := range c.Camera {
		if len(cam.ChannelFormat) > 1 {
			errs = append(errs, fmt.Errorf("camera[%d].channel_format must hold at most one entry when granted, got %d", i, len(cam.ChannelFormat)))
		}
	}
	return errors.Join(errs...)
}

func (v *validator) lidarPixels(path string, l LidarSensorViewConfiguration) {
	if l.NumOfPixels == nil {
		if len(l.Directions) > 0 || len(l.Timings) > 0 {
			v.addf("%s.num_of_pixels must be populated when directions or timings are", path)
		}
		return
	}
	n := int(*l.NumOfPixels)
	if len(l.Directions) > 0 && len(l.Directions) != n {
		v.addf("%s.directions must hold num_of_pixels=%d entries, got %d", path, n, len(l.Directions))
	}
	if len(l.Timings) > 0 && len(l.Timings) != n {
		v.addf("%s.timings must hold num_of_pixels=%d entries, got %d", path, n, len(l.Timings))
	}
	for i, d := range l.Directions {
		if math.Abs(d.Norm()-1) > 1e-6 {
			v.addf("%s.directions[%d] must be a unit vector, got length %g", path, i, d.Norm())
		}
	}
}

func (v *validator) camera(path string, c CameraSensorViewConfiguration) {
	v.base(path, c.DetectorBase)
	v.minUint32(path+".number_of_pixels_horizontal", c.NumberOfPixelsHorizontal, 1)
	v.minUint32(path+".number_of_pixels_vertical", c.NumberOfPixelsVertical, 1)
	v.minUint32(path+".samples_per_pixel", c.SamplesPerPixel, 1)
	v.minUint32(path+".max_number_of_interactions", c.MaxNumberOfInteractions, 1)
	for i, f := range c.ChannelFormat {
		if !f.IsValid() || f == ChannelFormatUnknown {
			v.addf("%s.channel_format[%d] must be a known format, got %s", path, i, f)
		}
	}
	if c.PixelOrder != nil && !c.PixelOrder.IsValid() {
		v.addf("%s.pixel_order must be a known order, got %s", path, *c.PixelOrder)
	}
	for i, w := range c.WavelengthData {
		wp := fmt.Sprintf("%s.wavelength_data[%d]", path, i)
		v.minFloat(wp+".start", w.Start, 0)
		if w.Start != nil && w.End != nil && *w.End < *w.Start {
			v.addf("%s.end must be >= start %g, got %g", wp, *w.Start, *w.End)
		}
		v.minFloat(wp+".samples_number", w.SamplesNumber, 1)
	}
}
