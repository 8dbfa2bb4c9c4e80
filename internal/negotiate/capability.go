package negotiate

import (
	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

// Capability describes what a simulator can offer. Nil limits mean
// "unlimited": the requested value passes through.
type Capability struct {
	// Version is stamped on every grant. Defaults to common.CurrentVersion.
	Version *common.InterfaceVersion

	// SimulationStartTime is the simulator's real start time. It is copied
	// into every grant and drives the first update computation.
	SimulationStartTime *common.Timestamp

	MaxRange                 *float64
	MaxFieldOfViewHorizontal *float64
	MaxFieldOfViewVertical   *float64

	// MinUpdateCycleTime is the shortest period the simulator can sample.
	MinUpdateCycleTime *common.Timestamp

	SupportsOmitStaticInformation bool

	// Per-technology capabilities. A nil entry means the technology is not
	// modelled and its records are dropped from the grant.
	Generic    *DetectorCapability
	Radar      *DetectorCapability
	Lidar      *DetectorCapability
	Camera     *DetectorCapability
	Ultrasonic *DetectorCapability
}

// DetectorCapability limits one technology's detector records. Fields that
// do not apply to a technology are ignored.
type DetectorCapability struct {
	MaxFieldOfViewHorizontal *float64
	MaxFieldOfViewVertical   *float64

	// Ray-traced technologies (radar, lidar).
	MaxRaysHorizontal *uint32
	MaxRaysVertical   *uint32
	MaxInteractions   *uint32
	// EmitterFrequencies lists the frequencies the simulator models (Hz).
	// Empty accepts any requested frequency.
	EmitterFrequencies     []float64
	SupportsAntennaDiagram bool
	MaxLidarPixels         *uint32

	// Camera.
	MaxPixelsHorizontal *uint32
	MaxPixelsVertical   *uint32
	MaxSamplesPerPixel  *uint32
	// ChannelFormats is the set of formats the renderer can produce.
	ChannelFormats []sensorview.ChannelFormat
	// PixelOrders is the set of supported orders. Empty means only
	// PixelOrderDefault.
	PixelOrders            []sensorview.PixelOrder
	SupportsWavelengthData bool
}

func (c *Capability) forTechnology(t sensorview.Technology) *DetectorCapability {
	switch t {
	case sensorview.TechGeneric:
		return c.Generic
	case sensorview.TechRadar:
		return c.Radar
	case sensorview.TechLidar:
		return c.Lidar
	case sensorview.TechCamera:
		return c.Camera
	case sensorview.TechUltrasonic:
		return c.Ultrasonic
	}
	return nil
}

func (d *DetectorCapability) supportsChannelFormat(f sensorview.ChannelFormat) bool {
	for _, s := range d.ChannelFormats {
		if s == f {
			return true
		}
	}
	return false
}

func (d *DetectorCapability) pixelOrders() []sensorview.PixelOrder {
	if len(d.PixelOrders) == 0 {
		return []sensorview.PixelOrder{sensorview.PixelOrderDefault}
	}
	return d.PixelOrders
}
