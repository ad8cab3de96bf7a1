package geometry

import (
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// Corners lists the corner names in ring order: {U,L} x {L,R}
var Corners = []string{"UL", "UR", "LL", "LR"}

// CornerFields describes how corner coordinate fields are named:
// Prefix + corner + extension + Suffix, e.g. CORNER_UL_LAT_PRODUCT
type CornerFields struct {
	Prefix string
	Suffix string
	XExt   string
	YExt   string
}

// Key returns the field name holding one component of one corner
func (cf CornerFields) Key(corner, ext string) string {
	return cf.Prefix + corner + ext + cf.Suffix
}

// PolygonFromCorners builds a closed polygon from the four named corners and removes the eight
// consumed fields from fields. Nothing is removed when a corner is missing.
func PolygonFromCorners(fields map[string]float64, cf CornerFields) (*geojson.Polygon, error) {
	ring := make([][]float64, 0, len(Corners)+1)
	for _, corner := range Corners {
		xKey, yKey := cf.Key(corner, cf.XExt), cf.Key(corner, cf.YExt)
		x, ok := fields[xKey]
		if !ok {
			return nil, &model.MissingFieldError{Field: xKey}
		}
		y, ok := fields[yKey]
		if !ok {
			return nil, &model.MissingFieldError{Field: yKey}
		}
		ring = append(ring, []float64{x, y})
	}
	for _, corner := range Corners {
		delete(fields, cf.Key(corner, cf.XExt))
		delete(fields, cf.Key(corner, cf.YExt))
	}
	ring = append(ring, ring[0])
	return geojson.NewPolygon([][][]float64{ring}), nil
}
