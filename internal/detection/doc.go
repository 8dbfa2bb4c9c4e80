// Package detection defines the logical detection record: the fused output
// of one or more physical or virtual sensors for one processing cycle, in a
// shared reference frame.
//
// The fusion and tracking that produce these records happen elsewhere. This
// package only fixes the shape of the record and the invariants a consumer
// may rely on.
package detection
