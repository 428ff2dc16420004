package main

import (
	"image/color"
	"math"

	"phasepositions/internal/geom"
)

// discLit reports whether a point of the disc is illuminated. xn is the
// horizontal position normalized to the disc's half-width at that row, in
// [-1, 1]. A phase of 0 lights the whole disc; as the phase grows the shadow
// moves in from the right until the disc is dark at π, then the light returns
// from the right.
func discLit(xn, phase float64) bool {
	phase = geom.NormalizeAngle(phase)
	switch {
	case phase == 0:
		return true
	case phase == math.Pi:
		return false
	case phase < math.Pi:
		return xn <= math.Cos(phase)
	default:
		return xn >= -math.Cos(phase)
	}
}

// shadeDisc renders a phase disc of diameter size into pix, an RGBA buffer
// of size*size*4 bytes. Pixels outside the disc are transparent.
func shadeDisc(pix []byte, size int, phase float64, light, dark color.RGBA) {
	r := 0.5 * float64(size)
	for y := 0; y < size; y++ {
		dy := float64(y) + 0.5 - r
		half := math.Sqrt(math.Max(0, r*r-dy*dy))
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			dx := float64(x) + 0.5 - r
			if half == 0 || math.Abs(dx) > half {
				pix[i], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 0, 0
				continue
			}
			c := dark
			if discLit(dx/half, phase) {
				c = light
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
}
