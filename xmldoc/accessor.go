package xmldoc

import (
	"strconv"
	"time"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// GetSingle returns the text (or attribute attr, when not empty) of the only element matching
// tag. Zero or several matches is an *model.AmbiguousFieldError.
func (d *Document) GetSingle(tag, attr string) (string, error) {
	nodes, err := d.query(tag)
	if err != nil {
		return "", err
	}
	if len(nodes) != 1 {
		return "", &model.AmbiguousFieldError{Tag: tag, Found: len(nodes)}
	}
	return value(nodes[0], tag, attr)
}

// GetSingleInt is GetSingle coerced to int
func (d *Document) GetSingleInt(tag string) (int, error) {
	s, err := d.GetSingle(tag, "")
	if err != nil {
		return 0, err
	}
	return toInt(tag, s)
}

// GetSingleFloat is GetSingle coerced to float64
func (d *Document) GetSingleFloat(tag string) (float64, error) {
	s, err := d.GetSingle(tag, "")
	if err != nil {
		return 0, err
	}
	return toFloat(tag, s)
}

// GetSingleDate is GetSingle parsed with the lenient provider time parser
func (d *Document) GetSingleDate(tag string) (time.Time, error) {
	s, err := d.GetSingle(tag, "")
	if err != nil {
		return time.Time{}, err
	}
	t, err := model.ParseTime(s)
	if err != nil {
		return time.Time{}, &model.CoercionError{Field: tag, Value: s, Err: err}
	}
	return t, nil
}

// GetSinglePolygon is GetSingle parsed as an x,y coordinate string
func (d *Document) GetSinglePolygon(tag string) (*geojson.Polygon, error) {
	return d.getSinglePolygon(tag, geometry.XY)
}

// GetSinglePolygonYX is GetSingle parsed as a y,x coordinate string
func (d *Document) GetSinglePolygonYX(tag string) (*geojson.Polygon, error) {
	return d.getSinglePolygon(tag, geometry.YX)
}

func (d *Document) getSinglePolygon(tag string, order geometry.AxisOrder) (*geojson.Polygon, error) {
	s, err := d.GetSingle(tag, "")
	if err != nil {
		return nil, err
	}
	return geometry.PolygonFromString(s, order)
}

// GetInstance returns the value of the element at position index among all matches of tag,
// without checking how many matches there are
func (d *Document) GetInstance(tag, attr string, index int) (string, error) {
	nodes, err := d.query(tag)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(nodes) {
		return "", &model.IndexError{Tag: tag, Index: index, Found: len(nodes)}
	}
	return value(nodes[index], tag, attr)
}

// GetInstanceInt is GetInstance coerced to int
func (d *Document) GetInstanceInt(tag string, index int) (int, error) {
	s, err := d.GetInstance(tag, "", index)
	if err != nil {
		return 0, err
	}
	return toInt(tag, s)
}

// GetAll returns the values of every match of tag in document order. No match yields an empty
// slice.
func (d *Document) GetAll(tag, attr string) ([]string, error) {
	nodes, err := d.query(tag)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(nodes))
	for _, node := range nodes {
		v, err := value(node, tag, attr)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// GetAllFloat is GetAll coerced to float64
func (d *Document) GetAllFloat(tag string) ([]float64, error) {
	ss, err := d.GetAll(tag, "")
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(ss))
	for i, s := range ss {
		if values[i], err = toFloat(tag, s); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func toInt(tag, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &model.CoercionError{Field: tag, Value: s, Err: err}
	}
	return v, nil
}

func toFloat(tag, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &model.CoercionError{Field: tag, Value: s, Err: err}
	}
	return v, nil
}
