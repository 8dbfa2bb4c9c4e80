package detection

import "github.com/banshee-data/sensorview/internal/common"

// LogicalDetectionData is one cycle's fused output.
type LogicalDetectionData struct {
	Version *common.InterfaceVersion `json:"version,omitempty"`
	Header  *Header                  `json:"header,omitempty"`

	// LogicalDetection holds the detections of the cycle. When any entry is
	// invalid, the valid ones come first and Header.NumberOfValidLogicalDetections
	// says how many there are.
	LogicalDetection []LogicalDetection `json:"logical_detection,omitempty"`
}

// Header carries the cycle-wide metadata.
type Header struct {
	LogicalDetectionTime           *common.Timestamp `json:"logical_detection_time,omitempty"`
	DataQualifier                  *DataQualifier    `json:"data_qualifier,omitempty"`
	NumberOfValidLogicalDetections *uint32           `json:"number_of_valid_logical_detections,omitempty"`
	// SensorID lists the contributing sensors. Order carries no meaning.
	SensorID []common.Identifier `json:"sensor_id,omitempty"`
}

// LogicalDetection is one fused measurement.
type LogicalDetection struct {
	ExistenceProbability *float64 `json:"existence_probability,omitempty"` // [0, 1]

	// ObjectID links the detection to a tracked object. The sentinel
	// common.InvalidIdentifier means there is none.
	ObjectID *common.Identifier `json:"object_id,omitempty"`

	Position     *common.Vector3d `json:"position,omitempty"`      // m
	PositionRMSE *common.Vector3d `json:"position_rmse,omitempty"` // m, >= 0
	Velocity     *common.Vector3d `json:"velocity,omitempty"`      // m/s
	VelocityRMSE *common.Vector3d `json:"velocity_rmse,omitempty"` // m/s, >= 0

	Intensity              *float64 `json:"intensity,omitempty"` // %, [0, 100]
	SNR                    *float64 `json:"snr,omitempty"`       // dB
	PointTargetProbability *float64 `json:"point_target_probability,omitempty"`

	// SensorID lists the physical sensors that contributed. Order carries no
	// meaning.
	SensorID []common.Identifier `json:"sensor_id,omitempty"`

	Classification *Classification `json:"classification,omitempty"`
	EchoPulseWidth *float64        `json:"echo_pulse_width,omitempty"` // m, >= 0
}

// HasObject reports whether the detection refers to a real tracked object.
func (d LogicalDetection) HasObject() bool {
	return d.ObjectID != nil && !d.ObjectID.IsInvalid()
}

// IsInvalid reports whether the detection is flagged for disregard.
func (d LogicalDetection) IsInvalid() bool {
	return d.Classification != nil && *d.Classification == ClassificationInvalid
}

// Clone returns a deep copy.
func (d LogicalDetection) Clone() LogicalDetection {
	out := LogicalDetection{
		ExistenceProbability:   common.CloneFloat64(d.ExistenceProbability),
		ObjectID:               common.ClonePtr(d.ObjectID),
		Position:               common.ClonePtr(d.Position),
		PositionRMSE:           common.ClonePtr(d.PositionRMSE),
		Velocity:               common.ClonePtr(d.Velocity),
		VelocityRMSE:           common.ClonePtr(d.VelocityRMSE),
		Intensity:              common.CloneFloat64(d.Intensity),
		SNR:                    common.CloneFloat64(d.SNR),
		PointTargetProbability: common.CloneFloat64(d.PointTargetProbability),
		Classification:         common.ClonePtr(d.Classification),
		EchoPulseWidth:         common.CloneFloat64(d.EchoPulseWidth),
	}
	if d.SensorID != nil {
		out.SensorID = append([]common.Identifier(nil), d.SensorID...)
	}
	return out
}

// Clone returns a deep copy, or nil.
func (d *LogicalDetectionData) Clone() *LogicalDetectionData {
	if d == nil {
		return nil
	}
	out := &LogicalDetectionData{Version: common.ClonePtr(d.Version)}
	if d.Header != nil {
		h := *d.Header
		h.LogicalDetectionTime = common.ClonePtr(d.Header.LogicalDetectionTime)
		h.DataQualifier = common.ClonePtr(d.Header.DataQualifier)
		h.NumberOfValidLogicalDetections = common.CloneUint32(d.Header.NumberOfValidLogicalDetections)
		if d.Header.SensorID != nil {
			h.SensorID = append([]common.Identifier(nil), d.Header.SensorID...)
		}
		out.Header = &h
	}
	if d.LogicalDetection != nil {
		out.LogicalDetection = make([]LogicalDetection, len(d.LogicalDetection))
		for i, ld := range d.LogicalDetection {
			out.LogicalDetection[i] = ld.Clone()
		}
	}
	return out
}

// Valid returns the valid prefix of the detection list. Without a declared
// valid count every entry is treated as valid.
func (d *LogicalDetectionData) Valid() []LogicalDetection {
	if d == nil {
		return nil
	}
	if d.Header == nil || d.Header.NumberOfValidLogicalDetections == nil {
		return d.LogicalDetection
	}
	n := int(*d.Header.NumberOfValidLogicalDetections)
	if n > len(d.LogicalDetection) {
		n = len(d.LogicalDetection)
	}
	return d.LogicalDetection[:n]
}
