// Package wire encodes sensor view configurations and logical detection
// data in the protobuf binary wire format.
//
// Field numbers are stable and never reused. Optional fields that are unset
// are not written, so absence survives a round trip; set fields are written
// even when zero. Fields of embedded value messages (timestamps, vectors,
// identifiers) use implicit presence and are omitted when zero. Unknown
// field numbers are skipped on read, and repeated scalars are accepted both
// packed and unpacked.
package wire
