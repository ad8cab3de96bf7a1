package sentinel2

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/xmldoc"
)

// Direction is an angle component
type Direction string

// Angle directions
const (
	Zenith  Direction = "Zenith"
	Azimuth Direction = "Azimuth"
)

// Directions lists both angle directions
var Directions = []Direction{Zenith, Azimuth}

const (
	sunGroup     = "Sun_Angles_Grid"
	viewingGroup = "Viewing_Incidence_Angles_Grids"
)

// Grid is a georeferenced angle raster. Cells without data are NaN.
type Grid struct {
	Values    [][]float64
	Transform geometry.Affine
	CRS       string
}

// Shape returns the number of rows and columns
func (g Grid) Shape() (rows, cols int) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	return len(g.Values), len(g.Values[0])
}

// Angles holds the sun and viewing incidence grids of one band
type Angles struct {
	BandID           int
	Sun              map[Direction]Grid
	ViewingIncidence map[Direction]Grid
}

// ParseAngles reads the sun grids and the viewing incidence grids of bandID from a granule
// document. Viewing incidence grids are recorded per detector and merged. The granule metadata
// is parsed from doc when not given.
func ParseAngles(doc *xmldoc.Document, granule *GranuleMetadata, bandID int) (*Angles, error) {
	if _, err := BandName(bandID); err != nil {
		return nil, err
	}
	if granule == nil {
		var err error
		if granule, err = ParseGranuleMetadata(doc); err != nil {
			return nil, err
		}
	}
	origin, ok := granule.ImageGeoposition[10]
	if !ok {
		return nil, &model.MissingFieldError{Field: "Geoposition[@resolution='10']"}
	}

	angles := &Angles{BandID: bandID, Sun: map[Direction]Grid{}, ViewingIncidence: map[Direction]Grid{}}
	viewing := fmt.Sprintf("%s[@bandId='%d']", viewingGroup, bandID)
	for _, dir := range Directions {
		sun, err := sunGrid(doc, dir)
		if err != nil {
			return nil, err
		}
		incidence, err := mergedDetectorGrid(doc, viewing, dir)
		if err != nil {
			return nil, err
		}

		sunTransform, err := gridTransform(doc, sunGroup+"/"+string(dir), origin)
		if err != nil {
			return nil, err
		}
		viewingTransform, err := gridTransform(doc, viewing+"/"+string(dir), origin)
		if err != nil {
			return nil, err
		}
		angles.Sun[dir] = Grid{Values: sun, Transform: sunTransform, CRS: granule.Projection}
		angles.ViewingIncidence[dir] = Grid{Values: incidence, Transform: viewingTransform, CRS: granule.Projection}
	}
	return angles, nil
}

// gridTransform builds the transform of an angle grid from its steps and the 10 m origin
func gridTransform(doc *xmldoc.Document, group string, origin Geoposition) (geometry.Affine, error) {
	colStep, err := doc.GetInstanceInt(group+"/COL_STEP", 0)
	if err != nil {
		return geometry.Affine{}, err
	}
	rowStep, err := doc.GetInstanceInt(group+"/ROW_STEP", 0)
	if err != nil {
		return geometry.Affine{}, err
	}
	return geometry.NewAffine(float64(colStep), float64(rowStep), float64(origin.ULX), float64(origin.ULY)), nil
}

func sunGrid(doc *xmldoc.Document, dir Direction) ([][]float64, error) {
	return gridValues(doc, sunGroup+"/"+string(dir))
}

// gridValues reads the VALUES rows below group as a rectangular grid
func gridValues(doc *xmldoc.Document, group string) ([][]float64, error) {
	tag := group + "/Values_List/VALUES"
	rows, err := doc.GetAll(tag, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &model.MissingFieldError{Field: tag}
	}
	values := make([][]float64, len(rows))
	for i, row := range rows {
		cells := strings.Fields(row)
		if i > 0 && len(cells) != len(values[0]) {
			return nil, &model.FormatError{Field: tag, Value: fmt.Sprintf("row %d has %d values, expected %d", i, len(cells), len(values[0]))}
		}
		values[i] = make([]float64, len(cells))
		for j, cell := range cells {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &model.CoercionError{Field: tag, Value: cell, Err: err}
			}
			values[i][j] = v
		}
	}
	return values, nil
}

// mergedDetectorGrid overlays the grids of every detector of a band. For each cell the first
// non-NaN value, in document order of the detectors, is kept.
func mergedDetectorGrid(doc *xmldoc.Document, viewing string, dir Direction) ([][]float64, error) {
	detectors, err := doc.Select(viewing)
	if err != nil {
		return nil, err
	}
	if len(detectors) == 0 {
		return nil, &model.MissingFieldError{Field: viewing}
	}

	var merged [][]float64
	for _, detector := range detectors {
		detectorID, _ := detector.Attr("detectorId")
		grid, err := gridValues(detector, string(dir))
		if err != nil {
			return nil, fmt.Errorf("detector %s: %w", detectorID, err)
		}
		if merged == nil {
			merged = newNaNGrid(len(grid), len(grid[0]))
		}
		if len(grid) != len(merged) || len(grid[0]) != len(merged[0]) {
			return nil, &model.FormatError{Field: viewing, Value: fmt.Sprintf("detector %s grid is %dx%d, expected %dx%d",
				detectorID, len(grid), len(grid[0]), len(merged), len(merged[0]))}
		}
		for i, row := range grid {
			for j, v := range row {
				if math.IsNaN(merged[i][j]) && !math.IsNaN(v) {
					merged[i][j] = v
				}
			}
		}
	}
	return merged, nil
}

func newNaNGrid(rows, cols int) [][]float64 {
	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = make([]float64, cols)
		for j := range grid[i] {
			grid[i][j] = math.NaN()
		}
	}
	return grid
}

// ParseAnglesBytes parses the angle grids of a granule document held in memory
func ParseAnglesBytes(data []byte, bandID int) (*Angles, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseAngles(doc, nil, bandID)
}
