// Package geometry reconstructs footprint polygons and raster georeferencing from the raw
// coordinate representations found in product metadata.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// AxisOrder is the order of the components of each coordinate tuple in the source
type AxisOrder int

const (
	// XY tuples are written x,y (lon,lat)
	XY AxisOrder = iota
	// YX tuples are written y,x (lat,lon) and are swapped on read
	YX
)

// ParseCoordinates splits a "a1,b1 a2,b2 ..." string into points in x,y order
func ParseCoordinates(s string, order AxisOrder) ([][]float64, error) {
	tokens := strings.Fields(s)
	points := make([][]float64, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.Split(token, ",")
		point := make([]float64, len(parts))
		for i, part := range parts {
			value, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return nil, &model.CoercionError{Field: "coordinates", Value: token, Err: err}
			}
			point[i] = value
		}
		if len(point) < 2 {
			return nil, &model.CoercionError{Field: "coordinates", Value: token,
				Err: fmt.Errorf("expected at least 2 components, got %d", len(point))}
		}
		if order == YX {
			for i, j := 0, len(point)-1; i < j; i, j = i+1, j-1 {
				point[i], point[j] = point[j], point[i]
			}
		}
		points = append(points, point)
	}
	return points, nil
}

// PolygonFromString builds a closed polygon from a whitespace separated list of comma separated
// coordinate tuples
func PolygonFromString(s string, order AxisOrder) (*geojson.Polygon, error) {
	points, err := ParseCoordinates(s, order)
	if err != nil {
		return nil, err
	}
	return PolygonFromPoints(points)
}

// PolygonFromPoints closes the ring formed by points and wraps it in a polygon.
// A ring that is already closed is left as is.
func PolygonFromPoints(points [][]float64) (*geojson.Polygon, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("a polygon needs at least 3 vertices, got %d", len(points))
	}
	ring := make([][]float64, len(points), len(points)+1)
	copy(ring, points)
	if !samePoint(ring[0], ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return geojson.NewPolygon([][][]float64{ring}), nil
}

// PolygonFromLonLat zips parallel longitude and latitude lists into a closed polygon
func PolygonFromLonLat(lons, lats []float64) (*geojson.Polygon, error) {
	if len(lons) != len(lats) {
		return nil, fmt.Errorf("got %d longitudes but %d latitudes", len(lons), len(lats))
	}
	points := make([][]float64, len(lons))
	for i := range lons {
		points[i] = []float64{lons[i], lats[i]}
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("a polygon needs at least 3 vertices, got %d", len(points))
	}
	return geojson.NewPolygon([][][]float64{append(points, points[0])}), nil
}

// IsClosed reports whether every ring of p ends on its first vertex
func IsClosed(p *geojson.Polygon) bool {
	if p == nil || len(p.Coordinates) == 0 {
		return false
	}
	for _, ring := range p.Coordinates {
		if len(ring) < 4 || !samePoint(ring[0], ring[len(ring)-1]) {
			return false
		}
	}
	return true
}

func samePoint(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
