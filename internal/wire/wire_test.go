package wire

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/detection"
	"github.com/banshee-data/sensorview/internal/sensorview"
	"github.com/banshee-data/sensorview/internal/testutil"
)

func TestSensorViewConfiguration_RoundTrip(t *testing.T) {
	want := testutil.SampleRequest()
	want.SimulationStartTime = &common.Timestamp{Seconds: -2, Nanos: 500}

	got, err := UnmarshalSensorViewConfiguration(MarshalSensorViewConfiguration(want))
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSensorViewConfiguration_AbsenceIsNotZero(t *testing.T) {
	in := &sensorview.SensorViewConfiguration{
		Range:                 common.Float64(0),
		UpdateCycleOffset:     &common.Timestamp{},
		OmitStaticInformation: common.Bool(false),
		SensorID:              common.ID(0),
		Camera: []sensorview.CameraSensorViewConfiguration{{
			SamplesPerPixel: common.Uint32(0),
		}},
	}
	got, err := UnmarshalSensorViewConfiguration(MarshalSensorViewConfiguration(in))
	require.NoError(t, err)

	require.NotNil(t, got.Range)
	assert.Zero(t, *got.Range)
	require.NotNil(t, got.UpdateCycleOffset)
	require.NotNil(t, got.OmitStaticInformation)
	assert.False(t, *got.OmitStaticInformation)
	require.NotNil(t, got.SensorID)

	assert.Nil(t, got.Version)
	assert.Nil(t, got.FieldOfViewHorizontal)
	assert.Nil(t, got.UpdateCycleTime)
	assert.Nil(t, got.MountingPosition)
	assert.Nil(t, got.Radar)

	require.Len(t, got.Camera, 1)
	assert.Equal(t, uint32(0), *got.Camera[0].SamplesPerPixel)
	assert.Nil(t, got.Camera[0].NumberOfPixelsHorizontal)
	assert.Nil(t, got.Camera[0].PixelOrder)
}

func TestSensorViewConfiguration_FieldNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   *sensorview.SensorViewConfiguration
		want []byte
	}{
		{
			name: "range is field 7 fixed64",
			in:   &sensorview.SensorViewConfiguration{Range: common.Float64(1.5)},
			want: []byte{0x39, 0, 0, 0, 0, 0, 0, 0xf8, 0x3f},
		},
		{
			name: "generic record is field 1000",
			in:   &sensorview.SensorViewConfiguration{Generic: []sensorview.GenericSensorViewConfiguration{{}}},
			want: []byte{0xc2, 0x3e, 0x00},
		},
		{
			name: "lidar timings are packed field 12",
			in: &sensorview.SensorViewConfiguration{Lidar: []sensorview.LidarSensorViewConfiguration{{
				Timings: []uint32{1, 2},
			}}},
			want: []byte{0xd2, 0x3e, 0x04, 0x62, 0x02, 0x01, 0x02},
		},
		{
			name: "nil encodes empty",
			in:   nil,
			want: []byte{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MarshalSensorViewConfiguration(tt.in))
		})
	}
}

func TestSensorViewConfiguration_SkipsUnknownFields(t *testing.T) {
	want := testutil.SampleRequest()
	b := MarshalSensorViewConfiguration(want)

	b = protowire.AppendTag(b, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 2000, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future detector"))
	b = protowire.AppendTag(b, 50, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 7)

	// An unknown field inside a known sub-message is skipped too.
	var radar []byte
	radar = protowire.AppendTag(radar, 77, protowire.Fixed64Type)
	radar = protowire.AppendFixed64(radar, math.Float64bits(3))
	b = protowire.AppendTag(b, svcRadar, protowire.BytesType)
	b = protowire.AppendBytes(b, radar)
	want.Radar = append(want.Radar, sensorview.RadarSensorViewConfiguration{})

	got, err := UnmarshalSensorViewConfiguration(b)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSensorViewConfiguration_MergesRepeatedSingularFields(t *testing.T) {
	e := &encoder{}
	putMountingPosition(e, svcMountingPosition, &common.MountingPosition{Position: common.Vec(1, 2, 3)})
	e.message(svcMountingPosition, func(s *encoder) {
		s.message(1, func(s *encoder) { s.double(1, 7) })
		s.message(2, func(s *encoder) { s.double(3, 0.5) })
	})
	e.message(svcUpdateCycleTime, func(s *encoder) { s.varint(1, 1) })
	e.message(svcUpdateCycleTime, func(s *encoder) { s.varint(2, 5) })
	e.message(svcSensorID, func(s *encoder) { s.varint(1, 4) })
	e.message(svcSensorID, func(s *encoder) {})

	got, err := UnmarshalSensorViewConfiguration(e.buf)
	require.NoError(t, err)
	want := &sensorview.SensorViewConfiguration{
		SensorID: common.ID(4),
		MountingPosition: &common.MountingPosition{
			Position:    common.Vec(7, 2, 3),
			Orientation: &common.Orientation3d{Yaw: 0.5},
		},
		UpdateCycleTime: &common.Timestamp{Seconds: 1, Nanos: 5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merge mismatch (-want +got):\n%s", diff)
	}
}

func TestSensorViewConfiguration_EmptyListsDecodeAsNil(t *testing.T) {
	in := &sensorview.SensorViewConfiguration{
		Radar: []sensorview.RadarSensorViewConfiguration{{TxAntennaDiagram: []sensorview.AntennaDiagramEntry{}}},
		Lidar: []sensorview.LidarSensorViewConfiguration{{Timings: []uint32{}, Directions: []common.Vector3d{}}},
		Camera: []sensorview.CameraSensorViewConfiguration{{
			ChannelFormat:  []sensorview.ChannelFormat{},
			WavelengthData: []sensorview.WavelengthData{},
		}},
	}
	got, err := UnmarshalSensorViewConfiguration(MarshalSensorViewConfiguration(in))
	require.NoError(t, err)
	require.Len(t, got.Radar, 1)
	require.Len(t, got.Lidar, 1)
	require.Len(t, got.Camera, 1)
	assert.Nil(t, got.Radar[0].TxAntennaDiagram)
	assert.Nil(t, got.Lidar[0].Timings)
	assert.Nil(t, got.Lidar[0].Directions)
	assert.Nil(t, got.Camera[0].ChannelFormat)
	assert.Nil(t, got.Camera[0].WavelengthData)
	if diff := cmp.Diff(in, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch beyond empty lists (-want +got):\n%s", diff)
	}
}

func TestSensorViewConfiguration_AcceptsUnpackedRepeated(t *testing.T) {
	var lidar []byte
	for _, v := range []uint64{0, 2500, 5000} {
		lidar = protowire.AppendTag(lidar, 12, protowire.VarintType)
		lidar = protowire.AppendVarint(lidar, v)
	}
	var cam []byte
	for _, f := range []sensorview.ChannelFormat{sensorview.ChannelFormatRGBU8Lin, sensorview.ChannelFormatMonoU8Lin} {
		cam = protowire.AppendTag(cam, 8, protowire.VarintType)
		cam = protowire.AppendVarint(cam, uint64(f))
	}
	var b []byte
	b = protowire.AppendTag(b, svcLidar, protowire.BytesType)
	b = protowire.AppendBytes(b, lidar)
	b = protowire.AppendTag(b, svcCamera, protowire.BytesType)
	b = protowire.AppendBytes(b, cam)

	got, err := UnmarshalSensorViewConfiguration(b)
	require.NoError(t, err)
	require.Len(t, got.Lidar, 1)
	assert.Equal(t, []uint32{0, 2500, 5000}, got.Lidar[0].Timings)
	require.Len(t, got.Camera, 1)
	assert.Equal(t, []sensorview.ChannelFormat{sensorview.ChannelFormatRGBU8Lin, sensorview.ChannelFormatMonoU8Lin}, got.Camera[0].ChannelFormat)
}

func TestSensorViewConfiguration_PreservesUnknownEnumValues(t *testing.T) {
	po := sensorview.PixelOrder(42)
	in := &sensorview.SensorViewConfiguration{Camera: []sensorview.CameraSensorViewConfiguration{{
		ChannelFormat: []sensorview.ChannelFormat{99},
		PixelOrder:    &po,
	}}}
	got, err := UnmarshalSensorViewConfiguration(MarshalSensorViewConfiguration(in))
	require.NoError(t, err)
	assert.Equal(t, []sensorview.ChannelFormat{99}, got.Camera[0].ChannelFormat)
	assert.Equal(t, po, *got.Camera[0].PixelOrder)
	assert.Error(t, got.Validate())
}

func TestSensorViewConfiguration_MalformedInput(t *testing.T) {
	full := MarshalSensorViewConfiguration(testutil.SampleRequest())

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{1, 5, len(full) - 1} {
			_, err := UnmarshalSensorViewConfiguration(full[:n])
			assert.Error(t, err, "prefix of %d bytes", n)
		}
	})

	t.Run("wrong wire type", func(t *testing.T) {
		var b []byte
		b = protowire.AppendTag(b, svcRange, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
		_, err := UnmarshalSensorViewConfiguration(b)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrWireType))
		assert.Contains(t, err.Error(), "field 7")
	})

	t.Run("bad tag", func(t *testing.T) {
		_, err := UnmarshalSensorViewConfiguration([]byte{0x00})
		assert.Error(t, err)
	})
}

func TestUnmarshalSensorViewConfiguration_Empty(t *testing.T) {
	got, err := UnmarshalSensorViewConfiguration(nil)
	require.NoError(t, err)
	assert.Equal(t, &sensorview.SensorViewConfiguration{}, got)
}

func TestLogicalDetectionData_RoundTrip(t *testing.T) {
	want := testutil.SampleDetections()
	got, err := UnmarshalLogicalDetectionData(MarshalLogicalDetectionData(want))
	require.NoError(t, err)

	opts := cmpopts.SortSlices(func(a, b common.Identifier) bool { return a.Value < b.Value })
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, got.Validate())

	// Order of detections carries the valid-prefix contract.
	require.Len(t, got.LogicalDetection, 3)
	assert.True(t, got.LogicalDetection[2].IsInvalid())
	assert.False(t, got.LogicalDetection[1].HasObject())
	assert.Equal(t, common.InvalidIdentifier, *got.LogicalDetection[1].ObjectID)
}

func TestLogicalDetectionData_Absence(t *testing.T) {
	in := &detection.LogicalDetectionData{
		Header: &detection.Header{},
		LogicalDetection: []detection.LogicalDetection{
			{Intensity: common.Float64(0)},
			{},
		},
	}
	got, err := UnmarshalLogicalDetectionData(MarshalLogicalDetectionData(in))
	require.NoError(t, err)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLogicalDetectionData_Truncated(t *testing.T) {
	full := MarshalLogicalDetectionData(testutil.SampleDetections())
	_, err := UnmarshalLogicalDetectionData(full[:len(full)-3])
	assert.Error(t, err)
}
