package detection_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/sensorview/internal/common"
	"github.com/banshee-data/sensorview/internal/detection"
	"github.com/banshee-data/sensorview/internal/testutil"
)

func classification(c detection.Classification) *detection.Classification { return &c }

func TestSampleDetections_ValidPrefix(t *testing.T) {
	d := testutil.SampleDetections()
	require.NoError(t, d.Validate())
	require.NotNil(t, d.Header.NumberOfValidLogicalDetections)
	assert.Equal(t, uint32(2), *d.Header.NumberOfValidLogicalDetections)
	assert.Len(t, d.LogicalDetection, 3)
	assert.Len(t, d.Valid(), 2)
	for _, ld := range d.Valid() {
		assert.False(t, ld.IsInvalid())
	}
	assert.True(t, d.LogicalDetection[2].IsInvalid())
}

func TestHasObject(t *testing.T) {
	d := testutil.SampleDetections()
	assert.True(t, d.LogicalDetection[0].HasObject())
	// Sentinel max id means no associated object.
	assert.False(t, d.LogicalDetection[1].HasObject())
	assert.False(t, d.LogicalDetection[2].HasObject())
}

func TestValid_WithoutDeclaredCount(t *testing.T) {
	d := &detection.LogicalDetectionData{
		LogicalDetection: []detection.LogicalDetection{{}, {}},
	}
	assert.Len(t, d.Valid(), 2)
	assert.NoError(t, d.Validate())

	var nilData *detection.LogicalDetectionData
	assert.Nil(t, nilData.Valid())
	assert.NoError(t, nilData.Validate())
}

func TestValidate_CountInvariant(t *testing.T) {
	invalid := detection.LogicalDetection{Classification: classification(detection.ClassificationInvalid)}
	valid := detection.LogicalDetection{Classification: classification(detection.ClassificationClutter)}

	tests := []struct {
		name    string
		data    *detection.LogicalDetectionData
		wantErr string
	}{
		{
			name: "invalid entry without declared count",
			data: &detection.LogicalDetectionData{
				LogicalDetection: []detection.LogicalDetection{valid, invalid},
			},
			wantErr: "number_of_valid_logical_detections must be populated",
		},
		{
			name: "declared count exceeds list",
			data: &detection.LogicalDetectionData{
				Header:           &detection.Header{NumberOfValidLogicalDetections: common.Uint32(3)},
				LogicalDetection: []detection.LogicalDetection{valid, invalid},
			},
			wantErr: "number_of_valid_logical_detections must be <= 2, got 3",
		},
		{
			name: "invalid entry inside prefix",
			data: &detection.LogicalDetectionData{
				Header:           &detection.Header{NumberOfValidLogicalDetections: common.Uint32(2)},
				LogicalDetection: []detection.LogicalDetection{valid, invalid},
			},
			wantErr: "logical_detection[1] is invalid but inside the declared valid prefix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	ok := &detection.LogicalDetectionData{
		Header:           &detection.Header{NumberOfValidLogicalDetections: common.Uint32(1)},
		LogicalDetection: []detection.LogicalDetection{valid, invalid},
	}
	assert.NoError(t, ok.Validate())
	assert.Len(t, ok.Valid(), 1)
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		ld      detection.LogicalDetection
		wantErr string
	}{
		{"existence above one", detection.LogicalDetection{ExistenceProbability: common.Float64(1.01)}, "existence_probability must be between 0 and 1"},
		{"existence negative", detection.LogicalDetection{ExistenceProbability: common.Float64(-0.1)}, "existence_probability must be between 0 and 1"},
		{"existence NaN", detection.LogicalDetection{ExistenceProbability: common.Float64(math.NaN())}, "existence_probability"},
		{"point target above one", detection.LogicalDetection{PointTargetProbability: common.Float64(2)}, "point_target_probability must be between 0 and 1"},
		{"intensity above hundred", detection.LogicalDetection{Intensity: common.Float64(100.5)}, "intensity must be between 0 and 100"},
		{"negative echo width", detection.LogicalDetection{EchoPulseWidth: common.Float64(-1)}, "echo_pulse_width must be >= 0"},
		{"negative position rmse", detection.LogicalDetection{PositionRMSE: common.Vec(0.1, -0.1, 0)}, "position_rmse must be >= 0 component-wise"},
		{"negative velocity rmse", detection.LogicalDetection{VelocityRMSE: common.Vec(0, 0, -1)}, "velocity_rmse must be >= 0 component-wise"},
		{"unmodelled classification", detection.LogicalDetection{Classification: classification(42)}, "classification must be a known value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ld.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			data := &detection.LogicalDetectionData{LogicalDetection: []detection.LogicalDetection{tt.ld}}
			require.Error(t, data.Validate())
			assert.Contains(t, data.Validate().Error(), "logical_detection[0]")
		})
	}

	edges := detection.LogicalDetection{
		ExistenceProbability:   common.Float64(1),
		PointTargetProbability: common.Float64(0),
		Intensity:              common.Float64(100),
		EchoPulseWidth:         common.Float64(0),
		PositionRMSE:           common.Vec(0, 0, 0),
	}
	assert.NoError(t, edges.Validate())
}

func TestValidate_HeaderQualifier(t *testing.T) {
	q := detection.DataQualifier(99)
	d := &detection.LogicalDetectionData{Header: &detection.Header{DataQualifier: &q}}
	require.Error(t, d.Validate())
	assert.Contains(t, d.Validate().Error(), "header.data_qualifier must be a known value")
}

func TestClone_IsDeep(t *testing.T) {
	orig := testutil.SampleDetections()
	c := orig.Clone()
	if diff := cmp.Diff(orig, c); diff != "" {
		t.Fatalf("clone differs:\n%s", diff)
	}
	c.Header.SensorID[0].Value = 99
	*c.LogicalDetection[0].ExistenceProbability = 0
	c.LogicalDetection[0].SensorID[0].Value = 99

	if diff := cmp.Diff(testutil.SampleDetections(), orig); diff != "" {
		t.Errorf("mutating the clone changed the original:\n%s", diff)
	}
}

func TestEnums(t *testing.T) {
	assert.Equal(t, "TEMPORARY_AVAILABLE", detection.DataQualifierTemporaryAvailable.String())
	assert.Equal(t, detection.DataQualifier(7), detection.DataQualifierInvalid)
	assert.Equal(t, "UNDERDRIVABLE", detection.ClassificationUnderdrivable.String())

	q, err := detection.ParseDataQualifier("blindness")
	require.NoError(t, err)
	assert.Equal(t, detection.DataQualifierBlindness, q)

	c, err := detection.ParseClassification("OVERDRIVABLE")
	require.NoError(t, err)
	assert.Equal(t, detection.ClassificationOverdrivable, c)
}

func TestEnumJSON_OutOfSetRoundTrip(t *testing.T) {
	q := detection.DataQualifier(42)
	in := &detection.LogicalDetectionData{
		Header: &detection.Header{DataQualifier: &q},
		LogicalDetection: []detection.LogicalDetection{
			{Classification: classification(detection.Classification(17))},
		},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"data_qualifier":"42"`)
	assert.Contains(t, string(data), `"classification":"17"`)

	out := &detection.LogicalDetectionData{}
	require.NoError(t, json.Unmarshal(data, out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}
