package negotiate

import (
	"fmt"
	"math"
	"sync"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/monitoring"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

var logf = monitoring.Component("negotiate")

// Resolver answers requested configurations for one simulator capability.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	cap Capability
}

// NewResolver creates a Resolver for the given capability.
func NewResolver(c Capability) *Resolver {
	return &Resolver{cap: c}
}

// Capability returns the capability the resolver answers with.
func (r *Resolver) Capability() Capability { return r.cap }

// Resolve produces the granted configuration for req. The result shares no
// memory with req and is complete when returned.
func (r *Resolver) Resolve(req *sensorview.SensorViewConfiguration) *sensorview.SensorViewConfiguration {
	granted, _ := r.ResolveWithReport(req)
	return granted
}

// ResolveWithReport is Resolve plus the list of fields that were narrowed
// or dropped, in field order.
func (r *Resolver) ResolveWithReport(req *sensorview.SensorViewConfiguration) (*sensorview.SensorViewConfiguration, []Narrowing) {
	if req == nil {
		req = &sensorview.SensorViewConfiguration{}
	}
	top := &report{}
	out := r.resolveTop(req, top)

	// Detector records are independent: resolve each on its own goroutine
	// into a preallocated slot, and publish only after all have finished.
	var wg sync.WaitGroup
	var reports []*report

	spawn := func(prefix string, fn func(rep *report)) {
		rep := &report{prefix: prefix}
		reports = append(reports, rep)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(rep)
		}()
	}

	if dc := r.techCap(sensorview.TechGeneric, len(req.Generic), top); dc != nil {
		out.Generic = make([]sensorview.GenericSensorViewConfiguration, len(req.Generic))
		for i := range req.Generic {
			i := i // per-iteration copy; go directive is < 1.22
			spawn(fmt.Sprintf("generic[%d]", i), func(rep *report) {
				out.Generic[i] = sensorview.GenericSensorViewConfiguration{
					DetectorBase: resolveBase(req.Generic[i].DetectorBase, dc, rep),
				}
			})
		}
	}
	if dc := r.techCap(sensorview.TechRadar, len(req.Radar), top); dc != nil {
		out.Radar = make([]sensorview.RadarSensorViewConfiguration, len(req.Radar))
		for i := range req.Radar {
			i := i // per-iteration copy; go directive is < 1.22
			spawn(fmt.Sprintf("radar[%d]", i), func(rep *report) {
				out.Radar[i] = resolveRadar(req.Radar[i], dc, rep)
			})
		}
	}
	if dc := r.techCap(sensorview.TechLidar, len(req.Lidar), top); dc != nil {
		out.Lidar = make([]sensorview.LidarSensorViewConfiguration, len(req.Lidar))
		for i := range req.Lidar {
			i := i // per-iteration copy; go directive is < 1.22
			spawn(fmt.Sprintf("lidar[%d]", i), func(rep *report) {
				out.Lidar[i] = resolveLidar(req.Lidar[i], dc, rep)
			})
		}
	}
	if dc := r.techCap(sensorview.TechCamera, len(req.Camera), top); dc != nil {
		out.Camera = make([]sensorview.CameraSensorViewConfiguration, len(req.Camera))
		for i := range req.Camera {
			i := i // per-iteration copy; go directive is < 1.22
			spawn(fmt.Sprintf("camera[%d]", i), func(rep *report) {
				out.Camera[i] = resolveCamera(req.Camera[i], dc, rep)
			})
		}
	}
	if dc := r.techCap(sensorview.TechUltrasonic, len(req.Ultrasonic), top); dc != nil {
		out.Ultrasonic = make([]sensorview.UltrasonicSensorViewConfiguration, len(req.Ultrasonic))
		for i := range req.Ultrasonic {
			i := i // per-iteration copy; go directive is < 1.22
			spawn(fmt.Sprintf("ultrasonic[%d]", i), func(rep *report) {
				out.Ultrasonic[i] = sensorview.UltrasonicSensorViewConfiguration{
					DetectorBase: resolveBase(req.Ultrasonic[i].DetectorBase, dc, rep),
				}
			})
		}
	}

	wg.Wait()

	narrowings := top.items
	for _, rep := range reports {
		narrowings = append(narrowings, rep.items...)
	}
	for _, n := range narrowings {
		logf("sensor %s: %s", sensorLabel(out.SensorID), n)
	}
	return out, narrowings
}

// FirstUpdate returns the first real update instant of a granted
// configuration. A missing offset or start time counts as zero; a missing
// cycle time means a single update at the offset.
func (r *Resolver) FirstUpdate(granted *sensorview.SensorViewConfiguration) (common.Timestamp, bool) {
	var cycle, offset, start common.Timestamp
	if granted != nil {
		if granted.UpdateCycleTime != nil {
			cycle = *granted.UpdateCycleTime
		}
		if granted.UpdateCycleOffset != nil {
			offset = *granted.UpdateCycleOffset
		}
		if granted.SimulationStartTime != nil {
			start = *granted.SimulationStartTime
		} else if r.cap.SimulationStartTime != nil {
			start = *r.cap.SimulationStartTime
		}
	}
	return FirstUpdate(cycle, offset, start)
}

func sensorLabel(id *common.Identifier) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

// techCap returns the capability for a technology, or nil when the
// technology is not modelled, noting the drop when records were requested.
func (r *Resolver) techCap(t sensorview.Technology, n int, top *report) *DetectorCapability {
	if n == 0 {
		return nil
	}
	dc := r.cap.forTechnology(t)
	if dc == nil {
		top.dropped(string(t)+"_sensor_view_configuration", fmt.Sprintf("%d record(s)", n))
	}
	return dc
}

func (r *Resolver) resolveTop(req *sensorview.SensorViewConfiguration, rep *report) *sensorview.SensorViewConfiguration {
	out := &sensorview.SensorViewConfiguration{
		Version:              common.ClonePtr(r.cap.Version),
		SensorID:             common.ClonePtr(req.SensorID),
		MountingPosition:     req.MountingPosition.Clone(),
		MountingPositionRMSE: req.MountingPositionRMSE.Clone(),
		SimulationStartTime:  common.ClonePtr(r.cap.SimulationStartTime),
	}
	if out.Version == nil {
		out.Version = common.CurrentVersion()
	}

	out.FieldOfViewHorizontal = rep.clampFloat("field_of_view_horizontal", req.FieldOfViewHorizontal, r.cap.MaxFieldOfViewHorizontal)
	out.FieldOfViewVertical = rep.clampFloat("field_of_view_vertical", req.FieldOfViewVertical, r.cap.MaxFieldOfViewVertical)
	out.Range = rep.clampFloat("range", req.Range, r.cap.MaxRange)

	if req.UpdateCycleTime != nil {
		if cycle, ok := grantCycle(*req.UpdateCycleTime, r.cap.MinUpdateCycleTime); ok {
			if cycle.Nanoseconds() != req.UpdateCycleTime.Nanoseconds() {
				rep.substituted("update_cycle_time", req.UpdateCycleTime.String(), cycle.String())
			}
			out.UpdateCycleTime = &cycle
		} else {
			rep.dropped("update_cycle_time", req.UpdateCycleTime.String())
		}
	}
	if req.UpdateCycleOffset != nil {
		o := req.UpdateCycleOffset.Normalize()
		out.UpdateCycleOffset = &o
	}

	if req.OmitStaticInformation != nil {
		omit := *req.OmitStaticInformation && r.cap.SupportsOmitStaticInformation
		if omit != *req.OmitStaticInformation {
			rep.substituted("omit_static_information", "true", "false")
		}
		out.OmitStaticInformation = &omit
	}
	return out
}

func resolveBase(req sensorview.DetectorBase, dc *DetectorCapability, rep *report) sensorview.DetectorBase {
	return sensorview.DetectorBase{
		SensorID:              common.ClonePtr(req.SensorID),
		MountingPosition:      req.MountingPosition.Clone(),
		MountingPositionRMSE:  req.MountingPositionRMSE.Clone(),
		FieldOfViewHorizontal: rep.clampFloat("field_of_view_horizontal", req.FieldOfViewHorizontal, dc.MaxFieldOfViewHorizontal),
		FieldOfViewVertical:   rep.clampFloat("field_of_view_vertical", req.FieldOfViewVertical, dc.MaxFieldOfViewVertical),
	}
}

func resolveRays(req sensorview.RayTracingParams, dc *DetectorCapability, rep *report) sensorview.RayTracingParams {
	return sensorview.RayTracingParams{
		NumberOfRaysHorizontal:  rep.clampUint("number_of_rays_horizontal", req.NumberOfRaysHorizontal, dc.MaxRaysHorizontal),
		NumberOfRaysVertical:    rep.clampUint("number_of_rays_vertical", req.NumberOfRaysVertical, dc.MaxRaysVertical),
		MaxNumberOfInteractions: rep.clampUint("max_number_of_interactions", req.MaxNumberOfInteractions, dc.MaxInteractions),
		EmitterFrequency:        resolveFrequency(req.EmitterFrequency, dc.EmitterFrequencies, rep),
	}
}

// resolveFrequency grants the requested frequency when modelled, else the
// nearest modelled one.
func resolveFrequency(req *float64, modelled []float64, rep *report) *float64 {
	if req == nil {
		return nil
	}
	v := *req
	if len(modelled) == 0 {
		return &v
	}
	best := modelled[0]
	for _, f := range modelled {
		if f == v {
			return &v
		}
		if math.Abs(f-v) < math.Abs(best-v) {
			best = f
		}
	}
	rep.substituted("emitter_frequency", fmtFloat(v), fmtFloat(best))
	return &best
}

func resolveRadar(req sensorview.RadarSensorViewConfiguration, dc *DetectorCapability, rep *report) sensorview.RadarSensorViewConfiguration {
	out := sensorview.RadarSensorViewConfiguration{
		DetectorBase:     resolveBase(req.DetectorBase, dc, rep),
		RayTracingParams: resolveRays(req.RayTracingParams, dc, rep),
	}
	if !dc.SupportsAntennaDiagram {
		if len(req.TxAntennaDiagram) > 0 {
			rep.dropped("tx_antenna_diagram", fmt.Sprintf("%d entries", len(req.TxAntennaDiagram)))
		}
		if len(req.RxAntennaDiagram) > 0 {
			rep.dropped("rx_antenna_diagram", fmt.Sprintf("%d entries", len(req.RxAntennaDiagram)))
		}
		return out
	}
	c := req.Clone()
	out.TxAntennaDiagram = c.TxAntennaDiagram
	out.RxAntennaDiagram = c.RxAntennaDiagram
	return out
}

func resolveLidar(req sensorview.LidarSensorViewConfiguration, dc *DetectorCapability, rep *report) sensorview.LidarSensorViewConfiguration {
	out := sensorview.LidarSensorViewConfiguration{
		DetectorBase:     resolveBase(req.DetectorBase, dc, rep),
		RayTracingParams: resolveRays(req.RayTracingParams, dc, rep),
	}
	if req.NumOfPixels == nil {
		if len(req.Directions) > 0 || len(req.Timings) > 0 {
			rep.dropped("directions", "pixel arrays without num_of_pixels")
		}
		return out
	}
	n := *req.NumOfPixels
	consistent := (len(req.Directions) == 0 || len(req.Directions) == int(n)) &&
		(len(req.Timings) == 0 || len(req.Timings) == int(n))
	switch {
	case !consistent:
		rep.dropped("num_of_pixels", fmtUint(n)+" (pixel arrays do not match)")
		return out
	case dc.MaxLidarPixels != nil && n > *dc.MaxLidarPixels:
		// A partial pixel set would change the scan pattern; grant none.
		rep.dropped("num_of_pixels", fmtUint(n))
		return out
	}
	c := req.Clone()
	out.NumOfPixels = c.NumOfPixels
	out.Directions = c.Directions
	out.Timings = c.Timings
	return out
}

func resolveCamera(req sensorview.CameraSensorViewConfiguration, dc *DetectorCapability, rep *report) sensorview.CameraSensorViewConfiguration {
	out := sensorview.CameraSensorViewConfiguration{
		DetectorBase:             resolveBase(req.DetectorBase, dc, rep),
		NumberOfPixelsHorizontal: rep.clampUint("number_of_pixels_horizontal", req.NumberOfPixelsHorizontal, dc.MaxPixelsHorizontal),
		NumberOfPixelsVertical:   rep.clampUint("number_of_pixels_vertical", req.NumberOfPixelsVertical, dc.MaxPixelsVertical),
		SamplesPerPixel:          rep.clampUint("samples_per_pixel", req.SamplesPerPixel, dc.MaxSamplesPerPixel),
		MaxNumberOfInteractions:  rep.clampUint("max_number_of_interactions", req.MaxNumberOfInteractions, dc.MaxInteractions),
		ChannelFormat:            SelectChannelFormat(req.ChannelFormat, dc.ChannelFormats),
		PixelOrder:               resolvePixelOrder(req.PixelOrder, dc, rep),
	}
	if len(req.ChannelFormat) > 0 {
		if len(out.ChannelFormat) == 0 {
			rep.dropped("channel_format", fmt.Sprint(req.ChannelFormat))
		} else if out.ChannelFormat[0] != req.ChannelFormat[0] {
			rep.substituted("channel_format", fmt.Sprint(req.ChannelFormat), out.ChannelFormat[0].String())
		}
	}
	if len(req.WavelengthData) > 0 {
		if dc.SupportsWavelengthData {
			out.WavelengthData = req.Clone().WavelengthData
		} else {
			rep.dropped("wavelength_data", fmt.Sprintf("%d entries", len(req.WavelengthData)))
		}
	}
	return out
}

// SelectChannelFormat walks the requested preference list in order and
// grants the first format the renderer supports, or nothing. The request is
// never reordered and at most one entry is granted.
func SelectChannelFormat(requested, supported []sensorview.ChannelFormat) []sensorview.ChannelFormat {
	dc := &DetectorCapability{ChannelFormats: supported}
	for _, f := range requested {
		if dc.supportsChannelFormat(f) {
			return []sensorview.ChannelFormat{f}
		}
	}
	return nil
}

func resolvePixelOrder(req *sensorview.PixelOrder, dc *DetectorCapability, rep *report) *sensorview.PixelOrder {
	if req == nil {
		return nil
	}
	orders := dc.pixelOrders()
	for _, o := range orders {
		if o == *req {
			v := o
			return &v
		}
	}
	v := orders[0]
	rep.substituted("pixel_order", req.String(), v.String())
	return &v
}
