// Package encoding packs elevations into 16 bit image channels.
package encoding

import (
	"math"
)

// Split32 uint32 to two uint16, most significant first
func Split32(in uint32) (uint16, uint16) {
	return uint16(in >> 16), uint16(in)
}

// Merge16 two uint16 (most significant first) to uint32
func Merge16(a, b uint16) uint32 {
	return (uint32(a) << 16) + uint32(b)
}

// Elevation encodes e as a fixed point number of steps of size scale above
// offset, split over two channels. Values outside the representable range
// are clamped.
func Elevation(e, offset, scale float64) (uint16, uint16) {
	steps := math.Round((e - offset) / scale)
	steps = math.Max(0, math.Min(math.MaxUint32, steps))
	return Split32(uint32(steps))
}

// DecodeElevation reverses Elevation.
func DecodeElevation(hi, lo uint16, offset, scale float64) float64 {
	return float64(Merge16(hi, lo))*scale + offset
}
