package geometry

// CornerRadii holds the per-corner radii of a rounded rectangle.
type CornerRadii struct {
	TL float64 `json:"tl"`
	TR float64 `json:"tr"`
	BR float64 `json:"br"`
	BL float64 `json:"bl"`
}

// NormalizeRadii clamps per-corner radii for a w by h box. Each corner is
// first clamped to [0, min(w,h)/2], then adjacent pairs are proportionally
// scaled down so that no side's two corner radii exceed the side length.
// If radii is nil the uniform radius is expanded to all four corners.
func NormalizeRadii(w, h, radius float64, radii *CornerRadii) CornerRadii {
	w = max(w, 0)
	h = max(h, 0)

	r := CornerRadii{TL: radius, TR: radius, BR: radius, BL: radius}
	if radii != nil {
		r = *radii
	}

	limit := min(w, h) / 2
	r.TL = Clamp(r.TL, 0, limit)
	r.TR = Clamp(r.TR, 0, limit)
	r.BR = Clamp(r.BR, 0, limit)
	r.BL = Clamp(r.BL, 0, limit)

	shrinkPair := func(a, b *float64, side float64) {
		sum := *a + *b
		if sum > side && sum > 0 {
			scale := side / sum
			*a *= scale
			*b *= scale
		}
	}
	shrinkPair(&r.TL, &r.TR, w)
	shrinkPair(&r.BL, &r.BR, w)
	shrinkPair(&r.TL, &r.BL, h)
	shrinkPair(&r.TR, &r.BR, h)

	return r
}

// RoundedRectPath emits a closed path of four line segments and four cubic
// bezier corner arcs for a w by h box at the origin. Radii are normalized
// before the path is built.
func RoundedRectPath(w, h float64, radii CornerRadii) []PathCommand {
	r := NormalizeRadii(w, h, 0, &radii)
	k := Kappa

	return []PathCommand{
		M(r.TL, 0),
		L(w-r.TR, 0),
		C(w-r.TR+k*r.TR, 0, w, r.TR-k*r.TR, w, r.TR),
		L(w, h-r.BR),
		C(w, h-r.BR+k*r.BR, w-r.BR+k*r.BR, h, w-r.BR, h),
		L(r.BL, h),
		C(r.BL-k*r.BL, h, 0, h-r.BL+k*r.BL, 0, h-r.BL),
		L(0, r.TL),
		C(0, r.TL-k*r.TL, r.TL-k*r.TL, 0, r.TL, 0),
		Z(),
	}
}
