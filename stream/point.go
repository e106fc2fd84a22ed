package stream

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// pointBitCounts are the per-axis signed-int widths of the three quantized
// tiers; the fourth tier falls back to raw floats.
var pointBitCounts = [4]int{16, 18, 20, 32}

// ClearCompressionPoint resets the compression anchor to the origin.
func (s *Stream) ClearCompressionPoint() {
	s.compressPoint = mgl32.Vec3{}
}

// SetCompressionPoint moves the compression anchor. Both peers must move it
// in lockstep, since compressed points travel as deltas from it.
func (s *Stream) SetCompressionPoint(p mgl32.Vec3) {
	s.compressPoint = p
}

// CompressionPoint returns the current compression anchor.
func (s *Stream) CompressionPoint() mgl32.Vec3 {
	return s.compressPoint
}

// WriteCompressedPoint writes p as a quantized delta from the compression
// anchor. scale is the quantization step per axis. A 2-bit tier selector
// picks the narrowest signed-int width that holds the scaled distance
// (16/18/20 bits per axis); points too far from the anchor travel as three
// raw floats of the absolute position.
func (s *Stream) WriteCompressedPoint(p mgl32.Vec3, scale float32) {
	// Same width for all three axes.
	invScale := 1.0 / scale
	vec := p.Sub(s.compressPoint)
	dist := vec.Len() * invScale

	var tier int
	switch {
	case dist < 1<<15:
		tier = 0
	case dist < 1<<17:
		tier = 1
	case dist < 1<<19:
		tier = 2
	default:
		tier = 3
	}

	s.WriteInt(int32(tier), 2)

	if tier != 3 {
		width := pointBitCounts[tier]
		s.WriteSignedInt(int32(vec.X()*invScale), width)
		s.WriteSignedInt(int32(vec.Y()*invScale), width)
		s.WriteSignedInt(int32(vec.Z()*invScale), width)
	} else {
		s.WriteFloat32(p.X())
		s.WriteFloat32(p.Y())
		s.WriteFloat32(p.Z())
	}
}

// ReadCompressedPoint reads a point written by WriteCompressedPoint with the
// same scale. Quantized tiers are decoded relative to the anchor; the
// raw-float tier is absolute and exact.
func (s *Stream) ReadCompressedPoint(scale float32) mgl32.Vec3 {
	tier := int(s.ReadInt(2))

	if tier == 3 {
		x := s.ReadFloat32()
		y := s.ReadFloat32()
		z := s.ReadFloat32()

		return mgl32.Vec3{x, y, z}
	}

	width := pointBitCounts[tier]
	x := float32(s.ReadSignedInt(width))
	y := float32(s.ReadSignedInt(width))
	z := float32(s.ReadSignedInt(width))

	return mgl32.Vec3{
		s.compressPoint.X() + x*scale,
		s.compressPoint.Y() + y*scale,
		s.compressPoint.Z() + z*scale,
	}
}

// rpWidths derives the direction field widths for the variable-precision
// point codec: the innermost breakpoint and the error budget fix how fine
// the angle and z quantization must be.
func rpWidths(dists []float32, errBudget float32) (angleBits, zBits int) {
	zBits = ceilLog2(uint32(1.0 + 2.0*dists[0]/errBudget))
	angleBits = ceilLog2(uint32(float64(dists[0]) * 2.0 * math.Pi / float64(errBudget)))

	return angleBits, zBits
}

// WriteCompressedPointRP writes p relative to the compression anchor with
// radial precision tiers. dists is a sorted array of radial breakpoints and
// errBudget the worst-case positional error tolerated at the innermost
// breakpoint; together they fix the direction widths. The magnitude travels
// as a bin index into dists plus a normalized offset inside the bin, or as a
// raw float beyond the outermost breakpoint.
//
// Returns the number of bits consumed.
func (s *Stream) WriteCompressedPointRP(p mgl32.Vec3, dists []float32, errBudget float32) uint32 {
	vec := p.Sub(s.compressPoint)
	length := vec.Len()
	if errBudget <= length {
		vec = vec.Mul(1.0 / length)
	} else {
		vec = mgl32.Vec3{0.0, 0.0, 1.0}
	}

	numDists := uint32(len(dists))
	angleBits, zBits := rpWidths(dists, errBudget)
	s.WriteAzimuthNormal(vec, angleBits, zBits)
	dirBits := uint32(angleBits + zBits)

	var bin uint32
	for bin < numDists {
		if dists[bin] > length {
			break
		}
		bin++
	}
	s.WriteRangedUint32(bin, 0, numDists)

	bitCount := uint32(ceilLog2(numDists+1)) + dirBits
	if bin >= numDists {
		s.WriteFloat32(length)

		return bitCount + 32
	}

	errBin := errBudget
	minBin := float32(0.0)
	if bin > 0 {
		errBin = dists[bin-1] * errBudget / dists[0]
		minBin = dists[bin-1]
	}

	extraBits := ceilLog2(uint32((dists[bin] - minBin) / errBin))
	s.WriteFloat((length-minBin)/(dists[bin]-minBin), extraBits)

	return uint32(extraBits) + bitCount
}

// ReadCompressedPointRP reads a point written by WriteCompressedPointRP with
// the same breakpoints and error budget. The decoded magnitude is folded
// into the returned point; the caller's error budget is never modified.
//
// Returns the point and the number of bits consumed.
func (s *Stream) ReadCompressedPointRP(dists []float32, errBudget float32) (mgl32.Vec3, uint32) {
	numDists := uint32(len(dists))
	angleBits, zBits := rpWidths(dists, errBudget)
	vec := s.ReadAzimuthNormal(angleBits, zBits)

	bin := s.ReadRangedUint32(0, numDists)
	bitCount := uint32(angleBits+zBits) + uint32(ceilLog2(numDists+1))

	var mag float32
	var consumed uint32
	if bin >= numDists {
		mag = s.ReadFloat32()
		consumed = bitCount + 32
	} else {
		errBin := errBudget
		minBin := float32(0.0)
		if bin > 0 {
			errBin = dists[bin-1] * errBudget / dists[0]
			minBin = dists[bin-1]
		}

		extraBits := ceilLog2(uint32((dists[bin] - minBin) / errBin))
		frac := s.ReadFloat(extraBits)
		consumed = uint32(extraBits) + bitCount
		mag = (dists[bin]-minBin)*frac + minBin
	}

	return vec.Mul(mag).Add(s.compressPoint), consumed
}
