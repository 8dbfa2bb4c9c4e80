// Package testutil provides shared test utilities and fixtures.
//
// The fixtures are fully populated records that exercise every field of the
// sensor view configuration and logical detection types, so codec, resolver
// and ledger tests agree on one reference value.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/detection"
	"github.com/banshee-data/sensorview/internal/sensorview"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func deg(d float64) *float64 { return common.Float64(d * math.Pi / 180) }

func mount(x, y, z, yawDeg float64) *common.MountingPosition {
	return &common.MountingPosition{
		Position:    common.Vec(x, y, z),
		Orientation: &common.Orientation3d{Yaw: yawDeg * math.Pi / 180},
	}
}

func mountRMSE() *common.MountingPosition {
	return &common.MountingPosition{
		Position:    common.Vec(0.01, 0.01, 0.02),
		Orientation: &common.Orientation3d{Roll: 0.001, Pitch: 0.001, Yaw: 0.002},
	}
}

// SampleRequest returns a sensor model's request for a front virtual sensor
// backed by one detector of every technology. Every optional field is
// populated, several with zero values, to catch absence/zero confusion.
func SampleRequest() *sensorview.SensorViewConfiguration {
	po := sensorview.PixelOrderDefault
	return &sensorview.SensorViewConfiguration{
		Version:               common.CurrentVersion(),
		SensorID:              common.ID(100),
		MountingPosition:      mount(3.8, 0, 0.5, 0),
		MountingPositionRMSE:  mountRMSE(),
		FieldOfViewHorizontal: deg(120),
		FieldOfViewVertical:   deg(30),
		Range:                 common.Float64(200),
		UpdateCycleTime:       common.Time(0.020),
		UpdateCycleOffset:     common.Time(0.008),
		OmitStaticInformation: common.Bool(false),
		Generic: []sensorview.GenericSensorViewConfiguration{{
			DetectorBase: sensorview.DetectorBase{
				SensorID:              common.ID(1),
				MountingPosition:      mount(3.8, 0, 0.5, 0),
				FieldOfViewHorizontal: deg(120),
				FieldOfViewVertical:   deg(30),
			},
		}},
		Radar: []sensorview.RadarSensorViewConfiguration{{
			DetectorBase: sensorview.DetectorBase{
				SensorID:              common.ID(2),
				MountingPosition:      mount(3.9, 0, 0.4, 0),
				MountingPositionRMSE:  mountRMSE(),
				FieldOfViewHorizontal: deg(90),
				FieldOfViewVertical:   deg(10),
			},
			RayTracingParams: sensorview.RayTracingParams{
				NumberOfRaysHorizontal:  common.Uint32(512),
				NumberOfRaysVertical:    common.Uint32(32),
				MaxNumberOfInteractions: common.Uint32(3),
				EmitterFrequency:        common.Float64(77e9),
			},
			TxAntennaDiagram: []sensorview.AntennaDiagramEntry{
				{HorizontalAngle: deg(-45), VerticalAngle: common.Float64(0), Response: common.Float64(-12)},
				{HorizontalAngle: common.Float64(0), VerticalAngle: common.Float64(0), Response: common.Float64(0)},
				{HorizontalAngle: deg(45), VerticalAngle: common.Float64(0), Response: common.Float64(-12)},
			},
			RxAntennaDiagram: []sensorview.AntennaDiagramEntry{
				{HorizontalAngle: deg(-45), VerticalAngle: common.Float64(0), Response: common.Float64(-9)},
				{HorizontalAngle: common.Float64(0), VerticalAngle: common.Float64(0), Response: common.Float64(0)},
				{HorizontalAngle: deg(45), VerticalAngle: common.Float64(0), Response: common.Float64(-9)},
			},
		}},
		Lidar: []sensorview.LidarSensorViewConfiguration{{
			DetectorBase: sensorview.DetectorBase{
				SensorID:              common.ID(3),
				MountingPosition:      mount(1.5, 0, 1.9, 0),
				FieldOfViewHorizontal: common.Float64(2 * math.Pi),
				FieldOfViewVertical:   deg(40),
			},
			RayTracingParams: sensorview.RayTracingParams{
				NumberOfRaysHorizontal:  common.Uint32(2),
				NumberOfRaysVertical:    common.Uint32(2),
				MaxNumberOfInteractions: common.Uint32(1),
				EmitterFrequency:        common.Float64(0),
			},
			NumOfPixels: common.Uint32(4),
			Directions: []common.Vector3d{
				{X: 1}, {Y: 1}, {X: -1}, {Y: -1},
			},
			Timings: []uint32{0, 0, 2500, 2500},
		}},
		Camera: []sensorview.CameraSensorViewConfiguration{{
			DetectorBase: sensorview.DetectorBase{
				SensorID:              common.ID(4),
				MountingPosition:      mount(2.0, 0, 1.3, 0),
				FieldOfViewHorizontal: deg(60),
				FieldOfViewVertical:   deg(40),
			},
			NumberOfPixelsHorizontal: common.Uint32(1920),
			NumberOfPixelsVertical:   common.Uint32(1080),
			ChannelFormat: []sensorview.ChannelFormat{
				sensorview.ChannelFormatBayerRGGBU16Lin,
				sensorview.ChannelFormatRGBU8Lin,
				sensorview.ChannelFormatMonoU8Lin,
			},
			SamplesPerPixel:         common.Uint32(1),
			MaxNumberOfInteractions: common.Uint32(1),
			WavelengthData: []sensorview.WavelengthData{
				{Start: common.Float64(380e-9), End: common.Float64(780e-9), SamplesNumber: common.Float64(3)},
			},
			PixelOrder: &po,
		}},
		Ultrasonic: []sensorview.UltrasonicSensorViewConfiguration{{
			DetectorBase: sensorview.DetectorBase{
				SensorID:              common.ID(5),
				MountingPosition:      mount(-0.9, 0.6, 0.4, 180),
				FieldOfViewHorizontal: deg(70),
				FieldOfViewVertical:   deg(35),
			},
		}},
	}
}

// SampleDetections returns a cycle with two valid detections followed by
// one invalid detection.
func SampleDetections() *detection.LogicalDetectionData {
	clutter := detection.ClassificationClutter
	over := detection.ClassificationOverdrivable
	invalid := detection.ClassificationInvalid
	return detection.NewBuilder(common.TimestampFromSeconds(12.348), detection.DataQualifierAvailable,
		common.Identifier{Value: 2}, common.Identifier{Value: 3}).
		AppendValid(detection.LogicalDetection{
			ExistenceProbability:   common.Float64(0.97),
			ObjectID:               common.ID(17),
			Position:               common.Vec(25.1, -1.2, 0.4),
			PositionRMSE:           common.Vec(0.1, 0.1, 0.2),
			Velocity:               common.Vec(-3.0, 0, 0),
			VelocityRMSE:           common.Vec(0.05, 0.05, 0),
			Intensity:              common.Float64(62),
			SNR:                    common.Float64(18.5),
			PointTargetProbability: common.Float64(0.1),
			SensorID:               []common.Identifier{{Value: 2}, {Value: 3}},
			Classification:         &over,
			EchoPulseWidth:         common.Float64(0.8),
		}).
		AppendValid(detection.LogicalDetection{
			ExistenceProbability:   common.Float64(0),
			ObjectID:               common.ClonePtr(&common.InvalidIdentifier),
			Position:               common.Vec(60, 4, 1),
			Intensity:              common.Float64(0),
			PointTargetProbability: common.Float64(1),
			SensorID:               []common.Identifier{{Value: 3}},
			Classification:         &clutter,
		}).
		AppendInvalid(detection.LogicalDetection{
			Position:       common.Vec(0, 0, 0),
			Classification: &invalid,
		}).
		Build()
}
