package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/detection"
)

// LogicalDetectionData field numbers.
const (
	lddVersion   protowire.Number = 1
	lddHeader    protowire.Number = 2
	lddDetection protowire.Number = 3
)

// MarshalLogicalDetectionData encodes d. Detection order is preserved.
// Empty lists decode as nil.
func MarshalLogicalDetectionData(d *detection.LogicalDetectionData) []byte {
	if d == nil {
		return []byte{}
	}
	e := &encoder{}
	putVersion(e, lddVersion, d.Version)
	if h := d.Header; h != nil {
		e.message(lddHeader, func(s *encoder) {
			putTimestamp(s, 1, h.LogicalDetectionTime)
			optEnum(s, 2, h.DataQualifier)
			s.optUint32(3, h.NumberOfValidLogicalDetections)
			for _, id := range h.SensorID {
				putIdentifier(s, 4, id)
			}
		})
	}
	for _, ld := range d.LogicalDetection {
		e.message(lddDetection, func(s *encoder) { putDetection(s, ld) })
	}
	if e.buf == nil {
		return []byte{}
	}
	return e.buf
}

func putDetection(e *encoder, d detection.LogicalDetection) {
	e.optDouble(1, d.ExistenceProbability)
	putOptIdentifier(e, 2, d.ObjectID)
	putOptVector(e, 3, d.Position)
	putOptVector(e, 4, d.PositionRMSE)
	putOptVector(e, 5, d.Velocity)
	putOptVector(e, 6, d.VelocityRMSE)
	e.optDouble(7, d.Intensity)
	e.optDouble(8, d.SNR)
	e.optDouble(9, d.PointTargetProbability)
	for _, id := range d.SensorID {
		putIdentifier(e, 10, id)
	}
	optEnum(e, 11, d.Classification)
	e.optDouble(12, d.EchoPulseWidth)
}

// UnmarshalLogicalDetectionData decodes b. The result never aliases b.
func UnmarshalLogicalDetectionData(b []byte) (*detection.LogicalDetectionData, error) {
	d := &detection.LogicalDetectionData{}
	err := walk("LogicalDetectionData", b, func(f field) error {
		switch f.num {
		case lddVersion:
			return sub(f, &d.Version, getVersion)
		case lddHeader:
			return sub(f, &d.Header, getHeader)
		case lddDetection:
			var ld detection.LogicalDetection
			err := f.message(func(b []byte) error { return getDetection(b, &ld) })
			d.LogicalDetection = append(d.LogicalDetection, ld)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode logical detection data: %w", err)
	}
	return d, nil
}

func getHeader(b []byte, h *detection.Header) error {
	return walk("LogicalDetectionDataHeader", b, func(f field) (err error) {
		switch f.num {
		case 1:
			return sub(f, &h.LogicalDetectionTime, getTimestamp)
		case 2:
			h.DataQualifier, err = fieldEnum[detection.DataQualifier](f)
			return err
		case 3:
			return setUint32(f, &h.NumberOfValidLogicalDetections)
		case 4:
			return appendIdentifier(f, &h.SensorID)
		}
		return nil
	})
}

func getDetection(b []byte, d *detection.LogicalDetection) error {
	vector := func(f field, dst **common.Vector3d) error {
		return sub(f, dst, getVector)
	}
	return walk("LogicalDetection", b, func(f field) (err error) {
		switch f.num {
		case 1:
			return setDouble(f, &d.ExistenceProbability)
		case 2:
			return sub(f, &d.ObjectID, getIdentifier)
		case 3:
			return vector(f, &d.Position)
		case 4:
			return vector(f, &d.PositionRMSE)
		case 5:
			return vector(f, &d.Velocity)
		case 6:
			return vector(f, &d.VelocityRMSE)
		case 7:
			return setDouble(f, &d.Intensity)
		case 8:
			return setDouble(f, &d.SNR)
		case 9:
			return setDouble(f, &d.PointTargetProbability)
		case 10:
			return appendIdentifier(f, &d.SensorID)
		case 11:
			d.Classification, err = fieldEnum[detection.Classification](f)
			return err
		case 12:
			return setDouble(f, &d.EchoPulseWidth)
		}
		return nil
	})
}
