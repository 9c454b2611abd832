// Package animator computes the per-frame model matrix of each animated triangle instance.
// Every function here is pure: the result depends only on the instance and the elapsed time.
package animator

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DegreesPerSecond is the angular speed of every instance around the Z axis.
const DegreesPerSecond = 60.0

// Period is the time in seconds an instance takes to complete one rotation.
const Period = 360.0 / DegreesPerSecond

// Instance is a single drawn copy of the mesh, placed at a fixed world offset.
type Instance struct {
	// Base is the world-space translation applied before rotation and scale.
	Base mgl32.Vec3
}

// DefaultInstances returns the three instances laid out left to right along the X axis.
//
// Returns:
//   - []Instance: a new slice of the three instances in draw order
func DefaultInstances() []Instance {
	return []Instance{
		{Base: mgl32.Vec3{-0.5, 0.0, 0.0}},
		{Base: mgl32.Vec3{0.0, 0.0, 0.0}},
		{Base: mgl32.Vec3{0.5, 0.0, 0.0}},
	}
}

// phase offsets t by the instance index so each instance runs one second ahead of the previous one.
func phase(index int, t float32) float32 {
	return t + float32(index)
}

// RotationAngle returns the Z rotation of an instance in radians.
//
// Parameters:
//   - index: the instance index
//   - t: elapsed seconds since program start
//
// Returns:
//   - float32: (t + index) * 60 degrees, in radians
func RotationAngle(index int, t float32) float32 {
	return phase(index, t) * mgl32.DegToRad(DegreesPerSecond)
}

// ScaleFactor returns the uniform scale of an instance, oscillating in [0.5, 1.5].
//
// Parameters:
//   - index: the instance index
//   - t: elapsed seconds since program start
//
// Returns:
//   - float32: sin(t + index) * 0.5 + 1.0
func ScaleFactor(index int, t float32) float32 {
	return math32.Sin(phase(index, t))*0.5 + 1.0
}

// ComputeTransform builds the model matrix of an instance at time t.
// Composition order is translate, then rotate about Z, then scale: M = T * R * S,
// so the mesh is scaled and rotated about its own origin before being moved to base.
//
// Parameters:
//   - base: the instance's world offset
//   - index: the instance index
//   - t: elapsed seconds since program start
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ComputeTransform(base mgl32.Vec3, index int, t float32) mgl32.Mat4 {
	s := ScaleFactor(index, t)
	m := mgl32.Ident4()
	m = m.Mul4(mgl32.Translate3D(base.X(), base.Y(), base.Z()))
	m = m.Mul4(mgl32.HomogRotate3DZ(RotationAngle(index, t)))
	m = m.Mul4(mgl32.Scale3D(s, s, s))
	return m
}

// Transform is shorthand for ComputeTransform using the instance's base offset.
//
// Parameters:
//   - index: the instance index
//   - t: elapsed seconds since program start
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func (i Instance) Transform(index int, t float32) mgl32.Mat4 {
	return ComputeTransform(i.Base, index, t)
}
