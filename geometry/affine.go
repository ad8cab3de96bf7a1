package geometry

// Affine maps pixel (col, row) to map coordinates:
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// NewAffine returns the north-up transform of a grid with the given steps and upper-left corner
func NewAffine(colStep, rowStep, ulx, uly float64) Affine {
	return Affine{A: colStep, C: ulx, E: -rowStep, F: uly}
}

// Apply transforms a pixel position
func (a Affine) Apply(col, row float64) (x, y float64) {
	return a.A*col + a.B*row + a.C, a.D*col + a.E*row + a.F
}

// Bounds is a map-coordinate extent
type Bounds struct {
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
}

// BoundsFromShape returns the extent covered by a rows x cols grid under transform a
func BoundsFromShape(a Affine, rows, cols int) Bounds {
	left, top := a.Apply(0, 0)
	right, bottom := a.Apply(float64(cols), float64(rows))
	return Bounds{Left: left, Bottom: bottom, Right: right, Top: top}
}
