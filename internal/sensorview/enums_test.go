package sensorview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelFormatNames(t *testing.T) {
	assert.Equal(t, "UNKNOWN", ChannelFormatUnknown.String())
	assert.Equal(t, "OTHER", ChannelFormatOther.String())
	assert.Equal(t, "RGB_U8_LIN", ChannelFormatRGBU8Lin.String())
	assert.Equal(t, "RCCB_F32_LIN", ChannelFormatRCCBF32Lin.String())
	assert.Equal(t, ChannelFormat(25), ChannelFormatRCCBF32Lin)
	assert.False(t, ChannelFormat(26).IsValid())

	f, err := ParseChannelFormat("bayer_rggb_u16_lin")
	require.NoError(t, err)
	assert.Equal(t, ChannelFormatBayerRGGBU16Lin, f)
}

func TestPixelOrderNames(t *testing.T) {
	assert.Equal(t, "DEFAULT", PixelOrderDefault.String())
	assert.Equal(t, "LEFT_RIGHT_BOTTOM_TOP", PixelOrderLeftRightBottomTop.String())
	o, err := ParsePixelOrder("RIGHT_LEFT_TOP_BOTTOM")
	require.NoError(t, err)
	assert.Equal(t, PixelOrderRightLeftTopBottom, o)
}

func TestChannelFormatJSON(t *testing.T) {
	in := []ChannelFormat{ChannelFormatRGBU8Lin, ChannelFormatMonoF32Lin}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `["RGB_U8_LIN","MONO_F32_LIN"]`, string(data))

	var out []ChannelFormat
	require.NoError(t, json.Unmarshal([]byte(`["RGB_U8_LIN", 5]`), &out))
	assert.Equal(t, in, out)
}

func TestEnumJSON_OutOfSetRoundTrip(t *testing.T) {
	po := PixelOrder(9)
	in := CameraSensorViewConfiguration{
		ChannelFormat: []ChannelFormat{ChannelFormat(99), ChannelFormatRGBU8Lin},
		PixelOrder:    &po,
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"channel_format":["99","RGB_U8_LIN"]`)
	assert.Contains(t, string(data), `"pixel_order":"9"`)

	var out CameraSensorViewConfiguration
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.ChannelFormat, out.ChannelFormat)
	require.NotNil(t, out.PixelOrder)
	assert.Equal(t, po, *out.PixelOrder)
	assert.False(t, out.PixelOrder.IsValid())
}
