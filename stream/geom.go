package stream

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// WriteVec3 writes a point as three raw little-endian floats.
func (s *Stream) WriteVec3(v mgl32.Vec3) {
	s.WriteFloat32(v.X())
	s.WriteFloat32(v.Y())
	s.WriteFloat32(v.Z())
}

// ReadVec3 reads a point written by WriteVec3.
func (s *Stream) ReadVec3() mgl32.Vec3 {
	x := s.ReadFloat32()
	y := s.ReadFloat32()
	z := s.ReadFloat32()

	return mgl32.Vec3{x, y, z}
}

// WriteNormalVector writes a unit vector as two quantized angles: the
// azimuth over bitCount+1 bits and the elevation over bitCount bits.
func (s *Stream) WriteNormalVector(vec mgl32.Vec3, bitCount int) {
	phi := atan2f(vec.X(), vec.Y()) / math.Pi
	theta := atan2f(vec.Z(), float32(math.Sqrt(float64(vec.X()*vec.X()+vec.Y()*vec.Y())))) / (math.Pi / 2.0)

	s.WriteSignedFloat(phi, bitCount+1)
	s.WriteSignedFloat(theta, bitCount)
}

// ReadNormalVector reads a unit vector written by WriteNormalVector with the
// same bitCount.
func (s *Stream) ReadNormalVector(bitCount int) mgl32.Vec3 {
	phi := float64(s.ReadSignedFloat(bitCount+1)) * math.Pi
	theta := float64(s.ReadSignedFloat(bitCount)) * (math.Pi / 2.0)

	return mgl32.Vec3{
		float32(math.Sin(phi) * math.Cos(theta)),
		float32(math.Cos(phi) * math.Cos(theta)),
		float32(math.Sin(theta)),
	}
}

// QuantizeNormal round-trips vec through the two-angle codec against a
// scratch stream, returning the vector a peer would decode. Useful for
// previewing quantization loss without touching a live stream.
func (s *Stream) QuantizeNormal(vec mgl32.Vec3, bitCount int) mgl32.Vec3 {
	var buf [128]byte
	tmp := New(buf[:])

	tmp.WriteNormalVector(vec, bitCount)
	tmp.SetBitPosition(0)

	return tmp.ReadNormalVector(bitCount)
}

// WriteAzimuthNormal writes a unit vector as a quantized z component over
// zBits and an azimuth angle over angleBits. z is clamped to [-1, 1]; when
// both horizontal components are negligible the angle is written as zero
// since it cannot affect the decoded vector.
func (s *Stream) WriteAzimuthNormal(vec mgl32.Vec3, angleBits, zBits int) {
	s.WriteSignedFloat(mgl32.Clamp(vec.Z(), -1.0, 1.0), zBits)

	const epsilon = 0.00001
	if math.Abs(float64(vec.X())) > epsilon || math.Abs(float64(vec.Y())) > epsilon {
		s.WriteSignedFloat(atan2f(vec.X(), vec.Y())/(2.0*math.Pi), angleBits)
	} else {
		s.WriteSignedFloat(0.0, angleBits)
	}
}

// ReadAzimuthNormal reads a unit vector written by WriteAzimuthNormal with
// the same widths. The horizontal magnitude is recovered from the unit-norm
// invariant; quantization can push z marginally past 1, so the radicand is
// floored at zero.
func (s *Stream) ReadAzimuthNormal(angleBits, zBits int) mgl32.Vec3 {
	z := s.ReadSignedFloat(zBits)
	angle := 2.0 * math.Pi * float64(s.ReadSignedFloat(angleBits))

	mult := 1.0 - z*z
	if mult > 0.0 {
		mult = float32(math.Sqrt(float64(mult)))
	} else {
		mult = 0.0
	}

	return mgl32.Vec3{
		mult * float32(math.Sin(angle)),
		mult * float32(math.Cos(angle)),
		z,
	}
}

// WriteVector writes a vector of bounded magnitude. A leading flag encodes
// whether the magnitude exceeds minMag; below that threshold nothing else is
// written and the peer decodes a zero vector. Magnitudes under maxMag are
// quantized into magBits as a fraction of maxMag, larger ones travel as a raw
// float. The direction follows as an azimuth/elevation normal.
func (s *Stream) WriteVector(vec mgl32.Vec3, minMag, maxMag float32, magBits, angleBits, zBits int) {
	mag := vec.Len()
	if s.WriteFlag(mag > minMag) {
		if s.WriteFlag(mag < maxMag) {
			s.WriteFloat(mag/maxMag, magBits)
		} else {
			s.WriteFloat32(mag)
		}
		vec = vec.Mul(1.0 / mag)
		s.WriteAzimuthNormal(vec, angleBits, zBits)
	}
}

// ReadVector reads a vector written by WriteVector with the same parameters.
func (s *Stream) ReadVector(minMag, maxMag float32, magBits, angleBits, zBits int) mgl32.Vec3 {
	if !s.ReadFlag() {
		return mgl32.Vec3{}
	}

	var mag float32
	if s.ReadFlag() {
		mag = s.ReadFloat(magBits) * maxMag
	} else {
		mag = s.ReadFloat32()
	}

	return s.ReadAzimuthNormal(angleBits, zBits).Mul(mag)
}

// WriteAffineTransform writes an affine matrix as its translation column
// followed by the rotation quaternion. Only the quaternion's x, y and z
// travel as raw floats; w is recovered from the unit-norm invariant on the
// far side, so one flag carrying its sign is enough.
func (s *Stream) WriteAffineTransform(m mgl32.Mat4) {
	s.WriteVec3(m.Col(3).Vec3())

	q := mgl32.Mat4ToQuat(m).Normalize()
	s.WriteFloat32(q.X())
	s.WriteFloat32(q.Y())
	s.WriteFloat32(q.Z())
	s.WriteFlag(q.W < 0.0)
}

// ReadAffineTransform reads a matrix written by WriteAffineTransform.
// The sum x² + y² + z² is clamped at 1 before the square root so
// overshoot in x, y, z cannot make the radicand negative.
func (s *Stream) ReadAffineTransform() mgl32.Mat4 {
	pos := s.ReadVec3()

	x := s.ReadFloat32()
	y := s.ReadFloat32()
	z := s.ReadFloat32()
	w := float32(math.Sqrt(1.0 - math.Min(float64(x*x+y*y+z*z), 1.0)))
	if s.ReadFlag() {
		w = -w
	}

	q := mgl32.Quat{W: w, V: mgl32.Vec3{x, y, z}}
	m := q.Mat4()
	m.SetCol(3, mgl32.Vec4{pos.X(), pos.Y(), pos.Z(), 1.0})

	return m
}
