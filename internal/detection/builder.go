package detection

import (
	"github.com/banshee-data/sensorview/internal/common"
)

// Builder assembles one cycle's LogicalDetectionData, keeping valid
// detections ahead of invalid ones and stamping the valid count.
type Builder struct {
	header  Header
	valid   []LogicalDetection
	invalid []LogicalDetection
}

// NewBuilder starts a record for the cycle at ts.
func NewBuilder(ts common.Timestamp, qualifier DataQualifier, sensors ...common.Identifier) *Builder {
	q := qualifier
	return &Builder{header: Header{
		LogicalDetectionTime: &ts,
		DataQualifier:        &q,
		SensorID:             append([]common.Identifier(nil), sensors...),
	}}
}

// Append adds a detection, routing it by IsInvalid.
func (b *Builder) Append(d LogicalDetection) *Builder {
	if d.IsInvalid() {
		return b.AppendInvalid(d)
	}
	return b.AppendValid(d)
}

// AppendValid adds a detection to the valid prefix.
func (b *Builder) AppendValid(d LogicalDetection) *Builder {
	b.valid = append(b.valid, d.Clone())
	return b
}

// AppendInvalid adds a detection after the valid prefix.
func (b *Builder) AppendInvalid(d LogicalDetection) *Builder {
	b.invalid = append(b.invalid, d.Clone())
	return b
}

// Build returns a fresh record. The builder can keep accumulating; records
// already built are not affected.
func (b *Builder) Build() *LogicalDetectionData {
	n := uint32(len(b.valid))
	h := b.header
	h.NumberOfValidLogicalDetections = &n
	out := &LogicalDetectionData{
		Version: common.CurrentVersion(),
		Header:  &h,
	}
	all := make([]LogicalDetection, 0, len(b.valid)+len(b.invalid))
	all = append(all, b.valid...)
	all = append(all, b.invalid...)
	if len(all) > 0 {
		out.LogicalDetection = all
	}
	return out.Clone()
}
