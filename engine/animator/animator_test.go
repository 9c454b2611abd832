package animator

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestComputeTransformIsDeterministic(t *testing.T) {
	base := mgl32.Vec3{0.5, -0.25, 0}
	for i := 0; i < 3; i++ {
		for _, tm := range []float32{0, 0.016, 1.5, 42.125} {
			assert.Equal(t, ComputeTransform(base, i, tm), ComputeTransform(base, i, tm))
		}
	}
}

func TestScaleFactorBounded(t *testing.T) {
	for i := 0; i < 3; i++ {
		for step := 0; step <= 2000; step++ {
			tm := float32(step) * 0.01
			s := ScaleFactor(i, tm)
			require.GreaterOrEqual(t, s, float32(0.5), "i=%d t=%v", i, tm)
			require.LessOrEqual(t, s, float32(1.5), "i=%d t=%v", i, tm)
		}
	}
}

func TestRotationPeriodIsSixSeconds(t *testing.T) {
	assert.InDelta(t, 6.0, Period, eps)
	for i := 0; i < 3; i++ {
		for _, tm := range []float32{0, 0.5, 2.25, 10} {
			diff := float64(RotationAngle(i, tm+Period) - RotationAngle(i, tm))
			assert.InDelta(t, 2*math.Pi, diff, 1e-4)
		}
	}
}

func TestRotationOffsetByIndexSeconds(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.InDelta(t, RotationAngle(0, 1.25+float32(i)), RotationAngle(i, 1.25), eps)
		assert.InDelta(t, ScaleFactor(0, 1.25+float32(i)), ScaleFactor(i, 1.25), eps)
	}
}

func TestTransformAtZeroIsPureTranslation(t *testing.T) {
	base := mgl32.Vec3{-0.5, 0, 0}
	assert.Equal(t, float32(0), RotationAngle(0, 0))
	assert.Equal(t, float32(1), ScaleFactor(0, 0))

	got := ComputeTransform(base, 0, 0)
	assert.True(t, got.ApproxEqualThreshold(mgl32.Translate3D(-0.5, 0, 0), eps), "got %v", got)
}

func TestTransformSecondInstanceAtZero(t *testing.T) {
	angle := RotationAngle(1, 0)
	scale := ScaleFactor(1, 0)
	assert.InDelta(t, math.Pi/3, float64(angle), eps)
	assert.InDelta(t, 1.4207, float64(scale), 1e-4)

	got := ComputeTransform(mgl32.Vec3{}, 1, 0)
	c, s := float32(math.Cos(math.Pi/3)), float32(math.Sin(math.Pi/3))
	want := mgl32.Mat4{
		scale * c, scale * s, 0, 0,
		-scale * s, scale * c, 0, 0,
		0, 0, scale, 0,
		0, 0, 0, 1,
	}
	assert.True(t, got.ApproxEqualThreshold(want, eps), "got %v", got)
}

func TestCompositionOrderTranslateRotateScale(t *testing.T) {
	base := mgl32.Vec3{0.5, 0.25, 0}
	tm := float32(0.7)
	got := ComputeTransform(base, 2, tm)

	// Translating first keeps the origin of the mesh at base regardless of rotation and scale.
	origin := got.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, base.X(), origin.X(), eps)
	assert.InDelta(t, base.Y(), origin.Y(), eps)

	sc := ScaleFactor(2, tm)
	reversed := mgl32.Scale3D(sc, sc, sc).
		Mul4(mgl32.HomogRotate3DZ(RotationAngle(2, tm))).
		Mul4(mgl32.Translate3D(base.X(), base.Y(), base.Z()))
	assert.False(t, got.ApproxEqualThreshold(reversed, eps))

	// A local point is scaled, then rotated, then moved.
	p := got.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	a := RotationAngle(2, tm)
	assert.InDelta(t, base.X()+sc*float32(math.Cos(float64(a))), p.X(), 1e-4)
	assert.InDelta(t, base.Y()+sc*float32(math.Sin(float64(a))), p.Y(), 1e-4)
}

func TestDefaultInstances(t *testing.T) {
	instances := DefaultInstances()
	require.Len(t, instances, 3)
	assert.Equal(t, mgl32.Vec3{-0.5, 0, 0}, instances[0].Base)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, instances[1].Base)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, instances[2].Base)
	assert.Equal(t, ComputeTransform(instances[2].Base, 2, 3), instances[2].Transform(2, 3))
}
