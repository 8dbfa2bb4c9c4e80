// Package common holds the value types shared by the sensor view
// configuration and logical detection records: identifiers, timestamps,
// vectors, mounting positions and the interface version stamp.
//
// All types are plain values. They are copied, never shared, and carry no
// behaviour beyond conversion helpers and the nominal mounting transform.
//
// Optional scalars throughout the module are modelled as pointers. A nil
// pointer means "not specified", which is distinct from a populated zero.
package common
