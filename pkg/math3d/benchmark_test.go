package math3d

import (
	"math"
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := RotateX(0.3).Mul(Translate(V3(1, 2, 3)))
	m2 := RotateY(0.7).Mul(Scale(V3(2, 3, 4)))
	var out Mat4

	for b.Loop() {
		out = m1.Mul(m2)
	}
	_ = out
}

func BenchmarkMulVec4(b *testing.B) {
	m := PerspectiveLH(math.Pi/3, 16.0/9.0, 0.1, 100)
	v := V4(1, 2, 5, 1)
	var out Vec4

	for b.Loop() {
		out = m.MulVec4(v)
	}
	_ = out
}

func BenchmarkInverse(b *testing.B) {
	m := Translate(V3(1, -2, 3)).Mul(RotateX(0.4)).Mul(Scale(V3(2, 0.5, 3)))
	var out Mat4

	for b.Loop() {
		out, _ = m.Inverse()
	}
	_ = out
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)
	var out Vec3

	for b.Loop() {
		out = v1.Cross(v2)
	}
	_ = out
}
