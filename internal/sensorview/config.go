package sensorview

import "github.com/banshee-data/sensorview/internal/common"

// SensorViewConfiguration describes one virtual sensor for one negotiation
// round: the geometry and timing of the virtual sensor itself plus any
// number of per-technology detector records.
type SensorViewConfiguration struct {
	// Version is the sender's interface version. Checked, never negotiated.
	Version *common.InterfaceVersion `json:"version,omitempty"`

	// SensorID identifies the virtual sensor.
	SensorID *common.Identifier `json:"sensor_id,omitempty"`

	MountingPosition     *common.MountingPosition `json:"mounting_position,omitempty"`
	MountingPositionRMSE *common.MountingPosition `json:"mounting_position_rmse,omitempty"`

	// Symmetric cones bounding the ground truth that must be extracted (rad).
	FieldOfViewHorizontal *float64 `json:"field_of_view_horizontal,omitempty"`
	FieldOfViewVertical   *float64 `json:"field_of_view_vertical,omitempty"`

	// Range is the maximum distance of interest (m, >= 0).
	Range *float64 `json:"range,omitempty"`

	// UpdateCycleTime and UpdateCycleOffset are the sampling period and
	// phase, both relative to a virtual simulation start of zero whatever
	// the simulator's real start time is.
	UpdateCycleTime   *common.Timestamp `json:"update_cycle_time,omitempty"`
	UpdateCycleOffset *common.Timestamp `json:"update_cycle_offset,omitempty"`

	// SimulationStartTime is informational and only meaningful when set by
	// the simulator.
	SimulationStartTime *common.Timestamp `json:"simulation_start_time,omitempty"`

	// OmitStaticInformation suppresses re-sending ground truth already
	// delivered at initialization.
	OmitStaticInformation *bool `json:"omit_static_information,omitempty"`

	Generic    []GenericSensorViewConfiguration    `json:"generic_sensor_view_configuration,omitempty"`
	Radar      []RadarSensorViewConfiguration      `json:"radar_sensor_view_configuration,omitempty"`
	Lidar      []LidarSensorViewConfiguration      `json:"lidar_sensor_view_configuration,omitempty"`
	Camera     []CameraSensorViewConfiguration     `json:"camera_sensor_view_configuration,omitempty"`
	Ultrasonic []UltrasonicSensorViewConfiguration `json:"ultrasonic_sensor_view_configuration,omitempty"`
}

// Clone returns a deep copy. Granted and decoded configurations are always
// handed out as fresh copies so nothing crossing the boundary is aliased.
func (c *SensorViewConfiguration) Clone() *SensorViewConfiguration {
	if c == nil {
		return nil
	}
	out := &SensorViewConfiguration{
		Version:               common.ClonePtr(c.Version),
		SensorID:              common.ClonePtr(c.SensorID),
		MountingPosition:      c.MountingPosition.Clone(),
		MountingPositionRMSE:  c.MountingPositionRMSE.Clone(),
		FieldOfViewHorizontal: common.CloneFloat64(c.FieldOfViewHorizontal),
		FieldOfViewVertical:   common.CloneFloat64(c.FieldOfViewVertical),
		Range:                 common.CloneFloat64(c.Range),
		UpdateCycleTime:       common.ClonePtr(c.UpdateCycleTime),
		UpdateCycleOffset:     common.ClonePtr(c.UpdateCycleOffset),
		SimulationStartTime:   common.ClonePtr(c.SimulationStartTime),
		OmitStaticInformation: common.CloneBool(c.OmitStaticInformation),
	}
	out.Generic = cloneEach(c.Generic, GenericSensorViewConfiguration.Clone)
	out.Radar = cloneEach(c.Radar, RadarSensorViewConfiguration.Clone)
	out.Lidar = cloneEach(c.Lidar, LidarSensorViewConfiguration.Clone)
	out.Camera = cloneEach(c.Camera, CameraSensorViewConfiguration.Clone)
	out.Ultrasonic = cloneEach(c.Ultrasonic, UltrasonicSensorViewConfiguration.Clone)
	return out
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// DetectorCount returns the number of physical detector records across all
// technologies.
func (c *SensorViewConfiguration) DetectorCount() int {
	if c == nil {
		return 0
	}
	return len(c.Generic) + len(c.Radar) + len(c.Lidar) + len(c.Camera) + len(c.Ultrasonic)
}

// Technology names a per-technology collection.
type Technology string

const (
	TechGeneric    Technology = "generic"
	TechRadar      Technology = "radar"
	TechLidar      Technology = "lidar"
	TechCamera     Technology = "camera"
	TechUltrasonic Technology = "ultrasonic"
)

// Technologies lists the per-technology collections in tag order.
var Technologies = []Technology{TechGeneric, TechRadar, TechLidar, TechCamera, TechUltrasonic}

// DetectorRef points at one detector record by technology and position.
type DetectorRef struct {
	Technology Technology
	Index      int
	Base       DetectorBase
}

// Detectors lists every detector's common subset, technology by technology
// in tag order and by position within each collection.
func (c *SensorViewConfiguration) Detectors() []DetectorRef {
	if c == nil {
		return nil
	}
	refs := make([]DetectorRef, 0, c.DetectorCount())
	for i, d := range c.Generic {
		refs = append(refs, DetectorRef{TechGeneric, i, d.DetectorBase})
	}
	for i, d := range c.Radar {
		refs = append(refs, DetectorRef{TechRadar, i, d.DetectorBase})
	}
	for i, d := range c.Lidar {
		refs = append(refs, DetectorRef{TechLidar, i, d.DetectorBase})
	}
	for i, d := range c.Camera {
		refs = append(refs, DetectorRef{TechCamera, i, d.DetectorBase})
	}
	for i, d := range c.Ultrasonic {
		refs = append(refs, DetectorRef{TechUltrasonic, i, d.DetectorBase})
	}
	return refs
}
