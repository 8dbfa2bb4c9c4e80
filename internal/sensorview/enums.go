package sensorview

import "github.com/banshee-data/sensorview/internal/common"

// ChannelFormat describes the channel layout, sample type and transfer
// function of camera image data.
type ChannelFormat int32

const (
	ChannelFormatUnknown ChannelFormat = iota
	ChannelFormatOther
	ChannelFormatMonoU8Lin
	ChannelFormatMonoU16Lin
	ChannelFormatMonoU32Lin
	ChannelFormatMonoF32Lin
	ChannelFormatRGBU8Lin
	ChannelFormatRGBU16Lin
	ChannelFormatRGBU32Lin
	ChannelFormatRGBF32Lin
	ChannelFormatBayerBGGRU8Lin
	ChannelFormatBayerBGGRU16Lin
	ChannelFormatBayerBGGRU32Lin
	ChannelFormatBayerBGGRF32Lin
	ChannelFormatBayerRGGBU8Lin
	ChannelFormatBayerRGGBU16Lin
	ChannelFormatBayerRGGBU32Lin
	ChannelFormatBayerRGGBF32Lin
	ChannelFormatRCCCU8Lin
	ChannelFormatRCCCU16Lin
	ChannelFormatRCCCU32Lin
	ChannelFormatRCCCF32Lin
	ChannelFormatRCCBU8Lin
	ChannelFormatRCCBU16Lin
	ChannelFormatRCCBU32Lin
	ChannelFormatRCCBF32Lin
)

var channelFormats = common.NewEnumTable[ChannelFormat]("channel_format",
	"UNKNOWN", "OTHER",
	"MONO_U8_LIN", "MONO_U16_LIN", "MONO_U32_LIN", "MONO_F32_LIN",
	"RGB_U8_LIN", "RGB_U16_LIN", "RGB_U32_LIN", "RGB_F32_LIN",
	"BAYER_BGGR_U8_LIN", "BAYER_BGGR_U16_LIN", "BAYER_BGGR_U32_LIN", "BAYER_BGGR_F32_LIN",
	"BAYER_RGGB_U8_LIN", "BAYER_RGGB_U16_LIN", "BAYER_RGGB_U32_LIN", "BAYER_RGGB_F32_LIN",
	"RCCC_U8_LIN", "RCCC_U16_LIN", "RCCC_U32_LIN", "RCCC_F32_LIN",
	"RCCB_U8_LIN", "RCCB_U16_LIN", "RCCB_U32_LIN", "RCCB_F32_LIN",
)

func (f ChannelFormat) String() string { return channelFormats.Name(f) }

// IsValid reports whether f is a member of the closed set.
func (f ChannelFormat) IsValid() bool { return channelFormats.IsValid(f) }

// ParseChannelFormat accepts a canonical name or a decimal value.
func ParseChannelFormat(s string) (ChannelFormat, error) { return channelFormats.Parse(s) }

func (f ChannelFormat) MarshalText() ([]byte, error) { return []byte(channelFormats.Text(f)), nil }

func (f *ChannelFormat) UnmarshalJSON(data []byte) error {
	return channelFormats.UnmarshalJSON(data, f)
}

// PixelOrder describes how pixels are laid out in the image buffer relative
// to the sensor's viewing direction. The zero value is the default order:
// left to right, top to bottom, seen from the sensor looking along +x.
type PixelOrder int32

const (
	PixelOrderDefault PixelOrder = iota
	PixelOrderOther
	PixelOrderRightLeftTopBottom
	PixelOrderLeftRightBottomTop
)

var pixelOrders = common.NewEnumTable[PixelOrder]("pixel_order",
	"DEFAULT", "OTHER", "RIGHT_LEFT_TOP_BOTTOM", "LEFT_RIGHT_BOTTOM_TOP",
)

func (p PixelOrder) String() string { return pixelOrders.Name(p) }

// IsValid reports whether p is a member of the closed set.
func (p PixelOrder) IsValid() bool { return pixelOrders.IsValid(p) }

// ParsePixelOrder accepts a canonical name or a decimal value.
func ParsePixelOrder(s string) (PixelOrder, error) { return pixelOrders.Parse(s) }

func (p PixelOrder) MarshalText() ([]byte, error) { return []byte(pixelOrders.Text(p)), nil }

func (p *PixelOrder) UnmarshalJSON(data []byte) error {
	return pixelOrders.UnmarshalJSON(data, p)
}
