package common

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Vector3d is a cartesian vector. Units depend on the field carrying it
// (m for positions, m/s for velocities, and the same units for RMSE).
type Vector3d struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec builds a Vector3d pointer.
func Vec(x, y, z float64) *Vector3d { return &Vector3d{X: x, Y: y, Z: z} }

// NonNegative reports whether every component is >= 0. Used for RMSE
// vectors.
func (v Vector3d) NonNegative() bool {
	return v.X >= 0 && v.Y >= 0 && v.Z >= 0
}

// Norm returns the euclidean length.
func (v Vector3d) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Orientation3d is a roll/pitch/yaw triple in radians. Rotations apply in
// yaw (about z), pitch (about the new y), roll (about the new x) order.
type Orientation3d struct {
	Roll  float64 `json:"roll"`
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
}

// MountingPosition is a rigid transform of a sensor frame relative to the
// vehicle frame. Virtual sensors and physical detectors are both mounted
// directly on the vehicle.
//
// Sensor frame convention: x is the viewing axis, z points up, y completes
// a right-handed system.
type MountingPosition struct {
	Position    *Vector3d      `json:"position,omitempty"`
	Orientation *Orientation3d `json:"orientation,omitempty"`
}

// Clone returns a deep copy, or nil.
func (m *MountingPosition) Clone() *MountingPosition {
	if m == nil {
		return nil
	}
	return &MountingPosition{
		Position:    ClonePtr(m.Position),
		Orientation: ClonePtr(m.Orientation),
	}
}

// Rotation returns the unit quaternion for the mounting orientation. A nil
// orientation is the identity.
func (m *MountingPosition) Rotation() quat.Number {
	if m == nil || m.Orientation == nil {
		return quat.Number{Real: 1}
	}
	o := m.Orientation
	qz := axisAngle(o.Yaw, 0, 0, 1)
	qy := axisAngle(o.Pitch, 0, 1, 0)
	qx := axisAngle(o.Roll, 1, 0, 0)
	return quat.Mul(quat.Mul(qz, qy), qx)
}

// ToParent maps a point from the sensor frame into the parent frame using
// the nominal transform only. The matching RMSE record is never consulted.
func (m *MountingPosition) ToParent(p Vector3d) Vector3d {
	q := m.Rotation()
	v := quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))
	out := Vector3d{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
	if m != nil && m.Position != nil {
		out.X += m.Position.X
		out.Y += m.Position.Y
		out.Z += m.Position.Z
	}
	return out
}

// ViewingAxis returns the sensor's x axis expressed in the parent frame.
func (m *MountingPosition) ViewingAxis() Vector3d {
	q := m.Rotation()
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: 1}), quat.Conj(q))
	return Vector3d{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

func axisAngle(angle, x, y, z float64) quat.Number {
	s, c := math.Sincos(angle / 2)
	return quat.Number{Real: c, Imag: s * x, Jmag: s * y, Kmag: s * z}
}
