package common

import (
	"fmt"
	"math"
	"time"

	"github.com/banshee-data/sensorview/internal/version"
)

// Identifier is an opaque id. Physical detector ids and virtual sensor ids
// live in separate namespaces; the type does not distinguish them.
type Identifier struct {
	Value uint64 `json:"value"`
}

// InvalidIdentifier is the sentinel "max value" id. On a detection's
// object_id it means "no associated tracked object".
var InvalidIdentifier = Identifier{Value: math.MaxUint64}

// ID builds an Identifier pointer.
func ID(v uint64) *Identifier { return &Identifier{Value: v} }

// IsInvalid reports whether id is the sentinel value.
func (id Identifier) IsInvalid() bool { return id.Value == math.MaxUint64 }

func (id Identifier) String() string {
	if id.IsInvalid() {
		return "invalid"
	}
	return fmt.Sprintf("%d", id.Value)
}

// Timestamp is a simulation time point or span as whole seconds plus
// nanoseconds. Nanos is always < 1e9 after Normalize.
type Timestamp struct {
	Seconds int64  `json:"seconds"`
	Nanos   uint32 `json:"nanos"`
}

const nanosPerSecond = int64(time.Second)

// TimestampFromNanos converts a nanosecond count into a normalised Timestamp.
func TimestampFromNanos(n int64) Timestamp {
	sec := n / nanosPerSecond
	rem := n % nanosPerSecond
	if rem < 0 {
		sec--
		rem += nanosPerSecond
	}
	return Timestamp{Seconds: sec, Nanos: uint32(rem)}
}

// TimestampFromDuration converts a time.Duration into a Timestamp.
func TimestampFromDuration(d time.Duration) Timestamp {
	return TimestampFromNanos(int64(d))
}

// TimestampFromSeconds converts fractional seconds, rounding to the nearest
// nanosecond.
func TimestampFromSeconds(s float64) Timestamp {
	return TimestampFromNanos(int64(math.Round(s * 1e9)))
}

// Time builds a Timestamp pointer from fractional seconds.
func Time(s float64) *Timestamp {
	ts := TimestampFromSeconds(s)
	return &ts
}

// Nanoseconds returns the timestamp as a single nanosecond count.
func (t Timestamp) Nanoseconds() int64 {
	return t.Seconds*nanosPerSecond + int64(t.Nanos)
}

// Duration returns the timestamp as a time.Duration.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Nanoseconds())
}

// SecondsFloat returns the timestamp in fractional seconds. Lossy; use
// Nanoseconds for arithmetic.
func (t Timestamp) SecondsFloat() float64 {
	return float64(t.Seconds) + float64(t.Nanos)/1e9
}

// Normalize carries any Nanos overflow into Seconds.
func (t Timestamp) Normalize() Timestamp {
	return TimestampFromNanos(t.Nanoseconds())
}

func (t Timestamp) String() string {
	return t.Duration().String()
}

// InterfaceVersion is the schema version stamp carried by every exchanged
// top-level record.
type InterfaceVersion struct {
	Major uint32 `json:"version_major"`
	Minor uint32 `json:"version_minor"`
	Patch uint32 `json:"version_patch"`
}

// CurrentVersion returns the interface version this module speaks.
func CurrentVersion() *InterfaceVersion {
	return &InterfaceVersion{
		Major: version.SchemaMajor,
		Minor: version.SchemaMinor,
		Patch: version.SchemaPatch,
	}
}

// Compatible reports whether two interface versions can exchange records.
// Minor and patch revisions only add tags, so only the major must match.
func (v InterfaceVersion) Compatible(other InterfaceVersion) bool {
	return v.Major == other.Major
}

func (v InterfaceVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
