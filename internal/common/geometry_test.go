package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-12

func assertVecNear(t *testing.T, want, got Vector3d) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestToParent_Identity(t *testing.T) {
	var m *MountingPosition
	assertVecNear(t, Vector3d{X: 1, Y: 2, Z: 3}, m.ToParent(Vector3d{X: 1, Y: 2, Z: 3}))

	empty := &MountingPosition{}
	assertVecNear(t, Vector3d{X: 1, Y: 2, Z: 3}, empty.ToParent(Vector3d{X: 1, Y: 2, Z: 3}))
}

func TestToParent_YawThenTranslate(t *testing.T) {
	m := &MountingPosition{
		Position:    Vec(3.5, 0, 0.5),
		Orientation: &Orientation3d{Yaw: math.Pi / 2},
	}
	// Viewing axis turns from vehicle x to vehicle y.
	assertVecNear(t, Vector3d{X: 3.5, Y: 10, Z: 0.5}, m.ToParent(Vector3d{X: 10}))
	assertVecNear(t, Vector3d{Y: 1}, m.ViewingAxis())
}

func TestToParent_PitchDown(t *testing.T) {
	// Positive pitch about y tilts the x axis towards -z.
	m := &MountingPosition{Orientation: &Orientation3d{Pitch: math.Pi / 2}}
	assertVecNear(t, Vector3d{Z: -1}, m.ViewingAxis())
}

func TestToParent_RollKeepsViewingAxis(t *testing.T) {
	m := &MountingPosition{Orientation: &Orientation3d{Roll: 0.7}}
	assertVecNear(t, Vector3d{X: 1}, m.ViewingAxis())
	// y rotates towards z under positive roll.
	assertVecNear(t, Vector3d{Y: math.Cos(0.7), Z: math.Sin(0.7)}, m.ToParent(Vector3d{Y: 1}))
}

func TestToParent_PreservesLength(t *testing.T) {
	m := &MountingPosition{Orientation: &Orientation3d{Roll: 0.3, Pitch: -0.2, Yaw: 1.1}}
	p := Vector3d{X: 4, Y: -2, Z: 1}
	assert.InDelta(t, p.Norm(), m.ToParent(p).Norm(), 1e-9)
}

// The nominal transform never depends on the RMSE record that accompanies
// it, so two sensors differing only in RMSE map points identically.
func TestToParent_IndependentOfRMSE(t *testing.T) {
	nominal := MountingPosition{
		Position:    Vec(1, -0.5, 1.2),
		Orientation: &Orientation3d{Roll: 0.01, Pitch: 0.05, Yaw: -0.3},
	}
	type mounted struct {
		pos  *MountingPosition
		rmse *MountingPosition
	}
	a := mounted{pos: nominal.Clone(), rmse: nil}
	b := mounted{pos: nominal.Clone(), rmse: &MountingPosition{
		Position:    Vec(5, 5, 5),
		Orientation: &Orientation3d{Roll: 1, Pitch: 1, Yaw: 1},
	}}

	p := Vector3d{X: 12, Y: 3, Z: -0.4}
	assert.Equal(t, a.pos.ToParent(p), b.pos.ToParent(p))
}

func TestMountingPositionClone(t *testing.T) {
	orig := &MountingPosition{Position: Vec(1, 2, 3), Orientation: &Orientation3d{Yaw: 1}}
	c := orig.Clone()
	assert.Equal(t, orig, c)
	c.Position.X = 9
	assert.Equal(t, 1.0, orig.Position.X)

	var nilPos *MountingPosition
	assert.Nil(t, nilPos.Clone())
}

func TestVectorNonNegative(t *testing.T) {
	assert.True(t, Vector3d{}.NonNegative())
	assert.False(t, Vector3d{Y: -0.1}.NonNegative())
}
