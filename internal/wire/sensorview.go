package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

// SensorViewConfiguration field numbers.
const (
	svcVersion             protowire.Number = 1
	svcSensorID            protowire.Number = 2
	svcMountingPosition    protowire.Number = 3
	svcMountingRMSE        protowire.Number = 4
	svcFOVHorizontal       protowire.Number = 5
	svcFOVVertical         protowire.Number = 6
	svcRange               protowire.Number = 7
	svcUpdateCycleTime     protowire.Number = 8
	svcUpdateCycleOffset   protowire.Number = 9
	svcSimulationStartTime protowire.Number = 10
	svcOmitStatic          protowire.Number = 11

	svcGeneric    protowire.Number = 1000
	svcRadar      protowire.Number = 1001
	svcLidar      protowire.Number = 1002
	svcCamera     protowire.Number = 1003
	svcUltrasonic protowire.Number = 1004
)

// MarshalSensorViewConfiguration encodes c. A nil configuration encodes as
// an empty message. Lists carry no presence on the wire: an empty list
// (such as a granted ChannelFormat that cannot be provided) is written as
// nothing and decodes as nil. A repeated tag for a singular sub-message
// merges into the value decoded so far.
func MarshalSensorViewConfiguration(c *sensorview.SensorViewConfiguration) []byte {
	if c == nil {
		return []byte{}
	}
	e := &encoder{}
	putVersion(e, svcVersion, c.Version)
	putOptIdentifier(e, svcSensorID, c.SensorID)
	putMountingPosition(e, svcMountingPosition, c.MountingPosition)
	putMountingPosition(e, svcMountingRMSE, c.MountingPositionRMSE)
	e.optDouble(svcFOVHorizontal, c.FieldOfViewHorizontal)
	e.optDouble(svcFOVVertical, c.FieldOfViewVertical)
	e.optDouble(svcRange, c.Range)
	putTimestamp(e, svcUpdateCycleTime, c.UpdateCycleTime)
	putTimestamp(e, svcUpdateCycleOffset, c.UpdateCycleOffset)
	putTimestamp(e, svcSimulationStartTime, c.SimulationStartTime)
	e.optBool(svcOmitStatic, c.OmitStaticInformation)

	for _, g := range c.Generic {
		e.message(svcGeneric, func(s *encoder) { putBase(s, g.DetectorBase) })
	}
	for _, r := range c.Radar {
		e.message(svcRadar, func(s *encoder) { putRadar(s, r) })
	}
	for _, l := range c.Lidar {
		e.message(svcLidar, func(s *encoder) { putLidar(s, l) })
	}
	for _, cam := range c.Camera {
		e.message(svcCamera, func(s *encoder) { putCamera(s, cam) })
	}
	for _, u := range c.Ultrasonic {
		e.message(svcUltrasonic, func(s *encoder) { putBase(s, u.DetectorBase) })
	}
	if e.buf == nil {
		return []byte{}
	}
	return e.buf
}

// UnmarshalSensorViewConfiguration decodes b. The result never aliases b.
func UnmarshalSensorViewConfiguration(b []byte) (*sensorview.SensorViewConfiguration, error) {
	c := &sensorview.SensorViewConfiguration{}
	err := walk("SensorViewConfiguration", b, func(f field) (err error) {
		switch f.num {
		case svcVersion:
			err = sub(f, &c.Version, getVersion)
		case svcSensorID:
			err = sub(f, &c.SensorID, getIdentifier)
		case svcMountingPosition:
			err = sub(f, &c.MountingPosition, getMountingPosition)
		case svcMountingRMSE:
			err = sub(f, &c.MountingPositionRMSE, getMountingPosition)
		case svcFOVHorizontal:
			err = setDouble(f, &c.FieldOfViewHorizontal)
		case svcFOVVertical:
			err = setDouble(f, &c.FieldOfViewVertical)
		case svcRange:
			err = setDouble(f, &c.Range)
		case svcUpdateCycleTime:
			err = sub(f, &c.UpdateCycleTime, getTimestamp)
		case svcUpdateCycleOffset:
			err = sub(f, &c.UpdateCycleOffset, getTimestamp)
		case svcSimulationStartTime:
			err = sub(f, &c.SimulationStartTime, getTimestamp)
		case svcOmitStatic:
			c.OmitStaticInformation, err = f.bool()
		case svcGeneric:
			var g sensorview.GenericSensorViewConfiguration
			err = f.message(func(b []byte) error { return getBase(b, "GenericSensorViewConfiguration", &g.DetectorBase, nil) })
			c.Generic = append(c.Generic, g)
		case svcRadar:
			var r sensorview.RadarSensorViewConfiguration
			err = f.message(func(b []byte) error { return getRadar(b, &r) })
			c.Radar = append(c.Radar, r)
		case svcLidar:
			var l sensorview.LidarSensorViewConfiguration
			err = f.message(func(b []byte) error { return getLidar(b, &l) })
			c.Lidar = append(c.Lidar, l)
		case svcCamera:
			var cam sensorview.CameraSensorViewConfiguration
			err = f.message(func(b []byte) error { return getCamera(b, &cam) })
			c.Camera = append(c.Camera, cam)
		case svcUltrasonic:
			var u sensorview.UltrasonicSensorViewConfiguration
			err = f.message(func(b []byte) error { return getBase(b, "UltrasonicSensorViewConfiguration", &u.DetectorBase, nil) })
			c.Ultrasonic = append(c.Ultrasonic, u)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode sensor view configuration: %w", err)
	}
	return c, nil
}

// Field numbers 1-5 are shared by every detector record.
func putBase(e *encoder, b sensorview.DetectorBase) {
	putOptIdentifier(e, 1, b.SensorID)
	putMountingPosition(e, 2, b.MountingPosition)
	putMountingPosition(e, 3, b.MountingPositionRMSE)
	e.optDouble(4, b.FieldOfViewHorizontal)
	e.optDouble(5, b.FieldOfViewVertical)
}

// getBase walks a detector record, decoding the shared fields into base
// and handing every other field to rest.
func getBase(b []byte, msg string, base *sensorview.DetectorBase, rest func(field) error) error {
	return walk(msg, b, func(f field) error {
		switch f.num {
		case 1:
			return sub(f, &base.SensorID, getIdentifier)
		case 2:
			return sub(f, &base.MountingPosition, getMountingPosition)
		case 3:
			return sub(f, &base.MountingPositionRMSE, getMountingPosition)
		case 4:
			return setDouble(f, &base.FieldOfViewHorizontal)
		case 5:
			return setDouble(f, &base.FieldOfViewVertical)
		}
		if rest != nil {
			return rest(f)
		}
		return nil
	})
}

// Ray tracing parameters use field numbers 6-9 in radar and lidar records.
func putRays(e *encoder, p sensorview.RayTracingParams) {
	e.optUint32(6, p.NumberOfRaysHorizontal)
	e.optUint32(7, p.NumberOfRaysVertical)
	e.optUint32(8, p.MaxNumberOfInteractions)
	e.optDouble(9, p.EmitterFrequency)
}

func getRays(f field, p *sensorview.RayTracingParams) (known bool, err error) {
	switch f.num {
	case 6:
		return true, setUint32(f, &p.NumberOfRaysHorizontal)
	case 7:
		return true, setUint32(f, &p.NumberOfRaysVertical)
	case 8:
		return true, setUint32(f, &p.MaxNumberOfInteractions)
	case 9:
		return true, setDouble(f, &p.EmitterFrequency)
	}
	return false, nil
}

func putDiagram(e *encoder, num protowire.Number, d []sensorview.AntennaDiagramEntry) {
	for _, entry := range d {
		e.message(num, func(s *encoder) {
			s.optDouble(1, entry.HorizontalAngle)
			s.optDouble(2, entry.VerticalAngle)
			s.optDouble(3, entry.Response)
		})
	}
}

func getDiagramEntry(f field, dst *[]sensorview.AntennaDiagramEntry) error {
	var entry sensorview.AntennaDiagramEntry
	err := f.message(func(b []byte) error {
		return walk("AntennaDiagramEntry", b, func(f field) error {
			switch f.num {
			case 1:
				return setDouble(f, &entry.HorizontalAngle)
			case 2:
				return setDouble(f, &entry.VerticalAngle)
			case 3:
				return setDouble(f, &entry.Response)
			}
			return nil
		})
	})
	*dst = append(*dst, entry)
	return err
}

func putRadar(e *encoder, r sensorview.RadarSensorViewConfiguration) {
	putBase(e, r.DetectorBase)
	putRays(e, r.RayTracingParams)
	putDiagram(e, 10, r.TxAntennaDiagram)
	putDiagram(e, 11, r.RxAntennaDiagram)
}

func getRadar(b []byte, r *sensorview.RadarSensorViewConfiguration) error {
	return getBase(b, "RadarSensorViewConfiguration", &r.DetectorBase, func(f field) error {
		if known, err := getRays(f, &r.RayTracingParams); known {
			return err
		}
		switch f.num {
		case 10:
			return getDiagramEntry(f, &r.TxAntennaDiagram)
		case 11:
			return getDiagramEntry(f, &r.RxAntennaDiagram)
		}
		return nil
	})
}

func putLidar(e *encoder, l sensorview.LidarSensorViewConfiguration) {
	putBase(e, l.DetectorBase)
	putRays(e, l.RayTracingParams)
	e.optUint32(10, l.NumOfPixels)
	for _, d := range l.Directions {
		putVector(e, 11, d)
	}
	timings := make([]uint64, len(l.Timings))
	for i, t := range l.Timings {
		timings[i] = uint64(t)
	}
	e.packed(12, timings)
}

func getLidar(b []byte, l *sensorview.LidarSensorViewConfiguration) error {
	return getBase(b, "LidarSensorViewConfiguration", &l.DetectorBase, func(f field) error {
		if known, err := getRays(f, &l.RayTracingParams); known {
			return err
		}
		switch f.num {
		case 10:
			return setUint32(f, &l.NumOfPixels)
		case 11:
			return f.message(func(b []byte) error {
				var v common.Vector3d
				err := getVector(b, &v)
				l.Directions = append(l.Directions, v)
				return err
			})
		case 12:
			vals, err := f.varints()
			for _, v := range vals {
				l.Timings = append(l.Timings, uint32(v))
			}
			return err
		}
		return nil
	})
}

func putCamera(e *encoder, c sensorview.CameraSensorViewConfiguration) {
	putBase(e, c.DetectorBase)
	e.optUint32(6, c.NumberOfPixelsHorizontal)
	e.optUint32(7, c.NumberOfPixelsVertical)
	formats := make([]uint64, len(c.ChannelFormat))
	for i, cf := range c.ChannelFormat {
		formats[i] = uint64(int64(cf))
	}
	e.packed(8, formats)
	e.optUint32(9, c.SamplesPerPixel)
	e.optUint32(10, c.MaxNumberOfInteractions)
	for _, w := range c.WavelengthData {
		e.message(11, func(s *encoder) {
			s.optDouble(1, w.Start)
			s.optDouble(2, w.End)
			s.optDouble(3, w.SamplesNumber)
		})
	}
	optEnum(e, 12, c.PixelOrder)
}

func getCamera(b []byte, c *sensorview.CameraSensorViewConfiguration) error {
	return getBase(b, "CameraSensorViewConfiguration", &c.DetectorBase, func(f field) (err error) {
		switch f.num {
		case 6:
			return setUint32(f, &c.NumberOfPixelsHorizontal)
		case 7:
			return setUint32(f, &c.NumberOfPixelsVertical)
		case 8:
			vals, err := f.varints()
			for _, v := range vals {
				c.ChannelFormat = append(c.ChannelFormat, sensorview.ChannelFormat(int32(v)))
			}
			return err
		case 9:
			return setUint32(f, &c.SamplesPerPixel)
		case 10:
			return setUint32(f, &c.MaxNumberOfInteractions)
		case 11:
			var w sensorview.WavelengthData
			err = f.message(func(b []byte) error {
				return walk("WavelengthData", b, func(f field) error {
					switch f.num {
					case 1:
						return setDouble(f, &w.Start)
					case 2:
						return setDouble(f, &w.End)
					case 3:
						return setDouble(f, &w.SamplesNumber)
					}
					return nil
				})
			})
			c.WavelengthData = append(c.WavelengthData, w)
			return err
		case 12:
			c.PixelOrder, err = fieldEnum[sensorview.PixelOrder](f)
			return err
		}
		return nil
	})
}
