package math

import "math"

// MakeColor3FromHSL converts hue, saturation and lightness (all 0..1) to
// linear RGB stored in a Vector3. Hue wraps; s and l are clamped.
func MakeColor3FromHSL(h, s, l float64, result *Vector3) *Vector3 {
	if result == nil {
		result = &Vector3{}
	}

	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	s = clamp(s, 0, 1)
	l = clamp(l, 0, 1)

	if s == 0 {
		return result.Set(l, l, l)
	}

	var p float64
	if l <= 0.5 {
		p = l * (1 + s)
	} else {
		p = l + s - l*s
	}
	q := 2*l - p

	return result.Set(
		hueToRGB(q, p, h+1.0/3),
		hueToRGB(q, p, h),
		hueToRGB(q, p, h-1.0/3),
	)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	if t < 1.0/6 {
		return p + (q-p)*6*t
	}
	if t < 0.5 {
		return q
	}
	if t < 2.0/3 {
		return p + (q-p)*6*(2.0/3-t)
	}
	return p
}
