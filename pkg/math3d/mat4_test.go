package math3d

import (
	"math"
	"testing"
)

// frobeniusDistance measures how far two matrices are apart.
func frobeniusDistance(a, b Mat4) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func TestIdentity(t *testing.T) {
	m := Identity()
	v := V3(1, 2, 3)
	if m.MulVec3(v) != v {
		t.Errorf("Identity().MulVec3(%v) = %v", v, m.MulVec3(v))
	}
	if m.Mul(m) != m {
		t.Error("I*I should be I")
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(V3(1, 2, 3))
	got := m.MulVec3(V3(10, 20, 30))
	want := V3(11, 22, 33)
	if got != want {
		t.Errorf("Translate.MulVec3 = %v, want %v", got, want)
	}
	if m.Translation() != (V3(1, 2, 3)) {
		t.Errorf("Translation() = %v", m.Translation())
	}
}

func TestMulOrder(t *testing.T) {
	// A*B*v applies B first: translate then scale should double the
	// translation
	scale := ScaleUniform(2)
	trans := Translate(V3(1, 0, 0))

	got := scale.Mul(trans).MulVec3(V3(0, 0, 0))
	want := V3(2, 0, 0)
	if got.Sub(want).Len() > 1e-12 {
		t.Errorf("scale*trans*origin = %v, want %v", got, want)
	}

	got = trans.Mul(scale).MulVec3(V3(0, 0, 0))
	want = V3(1, 0, 0)
	if got.Sub(want).Len() > 1e-12 {
		t.Errorf("trans*scale*origin = %v, want %v", got, want)
	}
}

func TestRotationDirections(t *testing.T) {
	// RotateY(a) carries +Z toward -X, so a camera built with
	// RotateY(-yaw) looks right for positive yaw
	got := RotateY(math.Pi / 2).MulVec3Dir(V3(0, 0, 1))
	if got.Sub(V3(-1, 0, 0)).Len() > 1e-9 {
		t.Errorf("RotateY(90deg) of +Z = %v, want -X", got)
	}

	// RotateX(a) carries +Z toward +Y
	got = RotateX(math.Pi / 2).MulVec3Dir(V3(0, 0, 1))
	if got.Sub(V3(0, 1, 0)).Len() > 1e-9 {
		t.Errorf("RotateX(90deg) of +Z = %v, want +Y", got)
	}
}

func TestTransposeProduct(t *testing.T) {
	a := RotateX(0.3).Mul(Translate(V3(1, 2, 3)))
	b := RotateY(0.7).Mul(Scale(V3(2, 3, 4)))

	lhs := a.Mul(b).Transpose()
	rhs := b.Transpose().Mul(a.Transpose())
	if d := frobeniusDistance(lhs, rhs); d > 1e-12 {
		t.Errorf("(A*B)^T != B^T*A^T, distance %g", d)
	}
}

func TestInverse(t *testing.T) {
	m := Translate(V3(1, -2, 3)).
		Mul(RotateX(0.4)).
		Mul(RotateY(-0.9)).
		Mul(Scale(V3(2, 0.5, 3)))

	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("well-conditioned matrix reported as singular")
	}
	if d := frobeniusDistance(m.Mul(inv), Identity()); d > 1e-4 {
		t.Errorf("M*M^-1 distance from I = %g", d)
	}

	// Point round-trip
	p := V3(4, -1, 7)
	back := inv.MulVec3(m.MulVec3(p))
	if back.Sub(p).Len() > 1e-4 {
		t.Errorf("inverse round-trip %v -> %v", p, back)
	}
}

func TestInverseSingular(t *testing.T) {
	if _, ok := Scale(V3(0, 1, 1)).Inverse(); ok {
		t.Error("zero-scale matrix should be singular")
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := 0.1, 100.0
	proj := PerspectiveLH(math.Pi/4, 4.0/3.0, near, far)

	atNear := proj.MulVec4(V4(0, 0, near, 1))
	if atNear.W <= 0 {
		t.Fatalf("near point has w = %g, want > 0", atNear.W)
	}
	if zw := atNear.Z / atNear.W; math.Abs(zw-(-1)) > 1e-6 {
		t.Errorf("z/w at near = %g, want -1", zw)
	}

	atFar := proj.MulVec4(V4(0, 0, far, 1))
	if zw := atFar.Z / atFar.W; math.Abs(zw-1) > 1e-6 {
		t.Errorf("z/w at far = %g, want +1", zw)
	}
}

func TestPerspectiveWSign(t *testing.T) {
	proj := PerspectiveLH(math.Pi/3, 1, 0.1, 100)

	if w := proj.MulVec4(V4(0, 0, 5, 1)).W; w <= 0 {
		t.Errorf("forward point maps to w = %g, want > 0", w)
	}
	if w := proj.MulVec4(V4(0, 0, -5, 1)).W; w >= 0 {
		t.Errorf("behind point maps to w = %g, want < 0", w)
	}
}

func TestGetSet(t *testing.T) {
	m := Identity()
	m.Set(1, 3, 42)
	if m.Get(1, 3) != 42 {
		t.Error("Set/Get mismatch")
	}
	// Translation lives in column 3
	if m[13] != 42 {
		t.Errorf("element (1,3) should be index 13, got layout %v", m)
	}
}
