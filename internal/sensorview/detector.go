package sensorview

import "github.com/banshee-data/sensorview/internal/common"

// DetectorBase is the subset shared by every physical detector record. Each
// detector carries its own mounting position and field of view; the virtual
// sensor's field of view is not required to cover them.
type DetectorBase struct {
	// SensorID identifies the physical detector. Separate namespace from
	// the virtual sensor id.
	SensorID *common.Identifier `json:"sensor_id,omitempty"`

	MountingPosition     *common.MountingPosition `json:"mounting_position,omitempty"`
	MountingPositionRMSE *common.MountingPosition `json:"mounting_position_rmse,omitempty"`

	// Symmetric cones [-fov/2, +fov/2] about the viewing axis (rad).
	FieldOfViewHorizontal *float64 `json:"field_of_view_horizontal,omitempty"`
	FieldOfViewVertical   *float64 `json:"field_of_view_vertical,omitempty"`
}

func (b DetectorBase) clone() DetectorBase {
	return DetectorBase{
		SensorID:              common.ClonePtr(b.SensorID),
		MountingPosition:      b.MountingPosition.Clone(),
		MountingPositionRMSE:  b.MountingPositionRMSE.Clone(),
		FieldOfViewHorizontal: common.CloneFloat64(b.FieldOfViewHorizontal),
		FieldOfViewVertical:   common.CloneFloat64(b.FieldOfViewVertical),
	}
}

// GenericSensorViewConfiguration requests ground truth for a detector of no
// particular technology.
type GenericSensorViewConfiguration struct {
	DetectorBase
}

// Clone returns a deep copy.
func (c GenericSensorViewConfiguration) Clone() GenericSensorViewConfiguration {
	return GenericSensorViewConfiguration{DetectorBase: c.DetectorBase.clone()}
}

// AntennaDiagramEntry is one sample of an antenna gain diagram.
type AntennaDiagramEntry struct {
	HorizontalAngle *float64 `json:"horizontal_angle,omitempty"` // rad
	VerticalAngle   *float64 `json:"vertical_angle,omitempty"`   // rad
	Response        *float64 `json:"response,omitempty"`         // dB
}

func cloneDiagram(in []AntennaDiagramEntry) []AntennaDiagramEntry {
	if in == nil {
		return nil
	}
	out := make([]AntennaDiagramEntry, len(in))
	for i, e := range in {
		out[i] = AntennaDiagramEntry{
			HorizontalAngle: common.CloneFloat64(e.HorizontalAngle),
			VerticalAngle:   common.CloneFloat64(e.VerticalAngle),
			Response:        common.CloneFloat64(e.Response),
		}
	}
	return out
}

// RayTracingParams are shared by the ray-traced technologies.
type RayTracingParams struct {
	NumberOfRaysHorizontal  *uint32  `json:"number_of_rays_horizontal,omitempty"`  // >= 1
	NumberOfRaysVertical    *uint32  `json:"number_of_rays_vertical,omitempty"`    // >= 1
	MaxNumberOfInteractions *uint32  `json:"max_number_of_interactions,omitempty"` // >= 1
	EmitterFrequency        *float64 `json:"emitter_frequency,omitempty"`          // Hz, >= 0
}

func (p RayTracingParams) clone() RayTracingParams {
	return RayTracingParams{
		NumberOfRaysHorizontal:  common.CloneUint32(p.NumberOfRaysHorizontal),
		NumberOfRaysVertical:    common.CloneUint32(p.NumberOfRaysVertical),
		MaxNumberOfInteractions: common.CloneUint32(p.MaxNumberOfInteractions),
		EmitterFrequency:        common.CloneFloat64(p.EmitterFrequency),
	}
}

// RadarSensorViewConfiguration requests ray-traced radar input.
type RadarSensorViewConfiguration struct {
	DetectorBase
	RayTracingParams

	// Diagrams are ordered sample lists; order is preserved end to end.
	TxAntennaDiagram []AntennaDiagramEntry `json:"tx_antenna_diagram,omitempty"`
	RxAntennaDiagram []AntennaDiagramEntry `json:"rx_antenna_diagram,omitempty"`
}

// Clone returns a deep copy.
func (c RadarSensorViewConfiguration) Clone() RadarSensorViewConfiguration {
	return RadarSensorViewConfiguration{
		DetectorBase:     c.DetectorBase.clone(),
		RayTracingParams: c.RayTracingParams.clone(),
		TxAntennaDiagram: cloneDiagram(c.TxAntennaDiagram),
		RxAntennaDiagram: cloneDiagram(c.RxAntennaDiagram),
	}
}

// LidarSensorViewConfiguration requests ray-traced lidar input. When the
// pixel arrays are populated their length equals NumOfPixels.
type LidarSensorViewConfiguration struct {
	DetectorBase
	RayTracingParams

	NumOfPixels *uint32 `json:"num_of_pixels,omitempty"`
	// Directions holds one unit ray direction per pixel, sensor frame.
	Directions []common.Vector3d `json:"directions,omitempty"`
	// Timings holds one emission offset per pixel in ns relative to the
	// start of the update cycle.
	Timings []uint32 `json:"timings,omitempty"`
}

// Clone returns a deep copy.
func (c LidarSensorViewConfiguration) Clone() LidarSensorViewConfiguration {
	out := LidarSensorViewConfiguration{
		DetectorBase:     c.DetectorBase.clone(),
		RayTracingParams: c.RayTracingParams.clone(),
		NumOfPixels:      common.CloneUint32(c.NumOfPixels),
	}
	if c.Directions != nil {
		out.Directions = append([]common.Vector3d(nil), c.Directions...)
	}
	if c.Timings != nil {
		out.Timings = append([]uint32(nil), c.Timings...)
	}
	return out
}

// WavelengthData describes the spectral sampling of one camera channel.
type WavelengthData struct {
	Start         *float64 `json:"start,omitempty"` // m
	End           *float64 `json:"end,omitempty"`   // m
	SamplesNumber *float64 `json:"samples_number,omitempty"`
}

// CameraSensorViewConfiguration requests rendered camera input.
type CameraSensorViewConfiguration struct {
	DetectorBase

	NumberOfPixelsHorizontal *uint32 `json:"number_of_pixels_horizontal,omitempty"` // >= 1
	NumberOfPixelsVertical   *uint32 `json:"number_of_pixels_vertical,omitempty"`   // >= 1

	// ChannelFormat lists acceptable formats, most preferred first, in a
	// request. A grant holds one entry, or none when nothing fits.
	ChannelFormat []ChannelFormat `json:"channel_format,omitempty"`

	SamplesPerPixel         *uint32          `json:"samples_per_pixel,omitempty"`          // >= 1
	MaxNumberOfInteractions *uint32          `json:"max_number_of_interactions,omitempty"` // >= 1
	WavelengthData          []WavelengthData `json:"wavelength_data,omitempty"`
	PixelOrder              *PixelOrder      `json:"pixel_order,omitempty"`
}

// Clone returns a deep copy.
func (c CameraSensorViewConfiguration) Clone() CameraSensorViewConfiguration {
	out := CameraSensorViewConfiguration{
		DetectorBase:             c.DetectorBase.clone(),
		NumberOfPixelsHorizontal: common.CloneUint32(c.NumberOfPixelsHorizontal),
		NumberOfPixelsVertical:   common.CloneUint32(c.NumberOfPixelsVertical),
		SamplesPerPixel:          common.CloneUint32(c.SamplesPerPixel),
		MaxNumberOfInteractions:  common.CloneUint32(c.MaxNumberOfInteractions),
		PixelOrder:               common.ClonePtr(c.PixelOrder),
	}
	if c.ChannelFormat != nil {
		out.ChannelFormat = append([]ChannelFormat(nil), c.ChannelFormat...)
	}
	if c.WavelengthData != nil {
		out.WavelengthData = make([]WavelengthData, len(c.WavelengthData))
		for i, w := range c.WavelengthData {
			out.WavelengthData[i] = WavelengthData{
				Start:         common.CloneFloat64(w.Start),
				End:           common.CloneFloat64(w.End),
				SamplesNumber: common.CloneFloat64(w.SamplesNumber),
			}
		}
	}
	return out
}

// UltrasonicSensorViewConfiguration requests ultrasonic input. It carries
// only the common subset for now.
type UltrasonicSensorViewConfiguration struct {
	DetectorBase
}

// Clone returns a deep copy.
func (c UltrasonicSensorViewConfiguration) Clone() UltrasonicSensorViewConfiguration {
	return UltrasonicSensorViewConfiguration{DetectorBase: c.DetectorBase.clone()}
}
