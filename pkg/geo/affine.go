package geo

import "math"

// Quaternions are stored as [4]float64 in [x, y, z, w] order, matching the
// serialized scene format.

// QuatIdentity returns the identity rotation.
func QuatIdentity() [4]float64 {
	return [4]float64{0, 0, 0, 1}
}

// QuatAxisAngle returns the quaternion rotating by angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) [4]float64 {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return [4]float64{a.X * s, a.Y * s, a.Z * s, math.Cos(angle / 2)}
}

// QuatYaw returns the quaternion rotating by angle radians around the Y axis.
func QuatYaw(angle float64) [4]float64 {
	return QuatAxisAngle(Vec3{Y: 1}, angle)
}

// QuatMul returns the composition a * b (b applied first).
func QuatMul(a, b [4]float64) [4]float64 {
	ax, ay, az, aw := a[0], a[1], a[2], a[3]
	bx, by, bz, bw := b[0], b[1], b[2], b[3]
	return [4]float64{
		aw*bx + ax*bw + ay*bz - az*by,
		aw*by - ax*bz + ay*bw + az*bx,
		aw*bz + ax*by - ay*bx + az*bw,
		aw*bw - ax*bx - ay*by - az*bz,
	}
}

// QuatRotate applies the rotation q to vector v.
func QuatRotate(q [4]float64, v Vec3) Vec3 {
	// v' = v + 2*qv x (qv x v + qw*v)
	qv := Vec3{q[0], q[1], q[2]}
	u := qv.Cross(v).Add(v.Scale(q[3]))
	return v.Add(qv.Cross(u).Scale(2))
}

// Affine is an affine transform: a 3x3 linear part and a translation. Scene
// node transforms compose as translate * rotate * scale.
type Affine struct {
	L [3][3]float64
	T Vec3
}

// AffineIdentity returns the identity transform.
func AffineIdentity() Affine {
	return Affine{L: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// TRS builds the transform that scales, then rotates, then translates.
func TRS(translate Vec3, rotate [4]float64, scale Vec3) Affine {
	x, y, z, w := rotate[0], rotate[1], rotate[2], rotate[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	r := [3][3]float64{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}
	var l [3][3]float64
	s := [3]float64{scale.X, scale.Y, scale.Z}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l[i][j] = r[i][j] * s[j]
		}
	}
	return Affine{L: l, T: translate}
}

// Mul returns the composition a * b, with b applied first.
func (a Affine) Mul(b Affine) Affine {
	var l [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			l[i][j] = a.L[i][0]*b.L[0][j] + a.L[i][1]*b.L[1][j] + a.L[i][2]*b.L[2][j]
		}
	}
	return Affine{L: l, T: a.Apply(b.T)}
}

// Apply transforms point v.
func (a Affine) Apply(v Vec3) Vec3 {
	return Vec3{
		X: a.L[0][0]*v.X + a.L[0][1]*v.Y + a.L[0][2]*v.Z + a.T.X,
		Y: a.L[1][0]*v.X + a.L[1][1]*v.Y + a.L[1][2]*v.Z + a.T.Y,
		Z: a.L[2][0]*v.X + a.L[2][1]*v.Y + a.L[2][2]*v.Z + a.T.Z,
	}
}

// ApplyDir transforms direction v, ignoring translation.
func (a Affine) ApplyDir(v Vec3) Vec3 {
	return Vec3{
		X: a.L[0][0]*v.X + a.L[0][1]*v.Y + a.L[0][2]*v.Z,
		Y: a.L[1][0]*v.X + a.L[1][1]*v.Y + a.L[1][2]*v.Z,
		Z: a.L[2][0]*v.X + a.L[2][1]*v.Y + a.L[2][2]*v.Z,
	}
}

// ApplyBox returns the axis-aligned box enclosing b under the transform.
func (a Affine) ApplyBox(b Box3) Box3 {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBox3()
	for _, c := range b.Corners() {
		out = out.Extend(a.Apply(c))
	}
	return out
}

// Det returns the determinant of the linear part. Negative determinants flip
// orientation, which matters for mesh winding.
func (a Affine) Det() float64 {
	l := a.L
	return l[0][0]*(l[1][1]*l[2][2]-l[1][2]*l[2][1]) -
		l[0][1]*(l[1][0]*l[2][2]-l[1][2]*l[2][0]) +
		l[0][2]*(l[1][0]*l[2][1]-l[1][1]*l[2][0])
}
