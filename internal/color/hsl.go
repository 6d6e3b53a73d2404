package color

import "math"

// HSLToRGB converts an HSL color to 8-bit RGBA and stores it in out.
//
// h is hue in degrees and must already be normalized to [0, 360).
// s and l are saturation and lightness in [0, 1]. alpha is passed through
// on the 0-255 scale. Inputs are not validated.
//
// The returned pointer is out itself, so the result aliases the caller's
// scratch value and is overwritten by the next call that reuses it.
func HSLToRGB(h, s, l, alpha float64, out *ColorU8) *ColorU8 {
	out.A = channel(alpha)

	if s == 0 {
		v := unit(l)
		out.R, out.G, out.B = v, v, v
		return out
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	hk := h / 360

	out.R = unit(hueToRGB(p, q, hk+1.0/3))
	out.G = unit(hueToRGB(p, q, hk))
	out.B = unit(hueToRGB(p, q, hk-1.0/3))
	return out
}

// hueToRGB evaluates one channel of the piecewise hue function.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// unit maps [0,1] to [0,255] with rounding.
func unit(v float64) uint8 {
	return channel(v * 255)
}

// channel rounds v and clamps it to [0,255].
func channel(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
