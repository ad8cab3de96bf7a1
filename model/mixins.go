package model

import (
	"math"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// Properties is a mixin copying normalized record fields onto a feature.
// The footprint is skipped since it is already the feature geometry.
type Properties map[string]interface{}

// Apply implements the GeoJSONFeatureMixin interface
func (p Properties) Apply(feature *geojson.Feature) error {
	if feature.Properties == nil {
		feature.Properties = map[string]interface{}{}
	}
	for key, value := range p {
		if key == KeyFootprint {
			continue
		}
		feature.Properties[key] = propertyValue(value)
	}
	return nil
}

func propertyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return FormatTime(v)
	case float64:
		// NaN has no JSON representation
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	default:
		return value
	}
}

// SourceLocation is a mixin recording where a record was parsed from
type SourceLocation struct {
	Path   string
	Format string
}

// Apply implements the GeoJSONFeatureMixin interface
func (sl SourceLocation) Apply(feature *geojson.Feature) error {
	if feature.Properties == nil {
		feature.Properties = map[string]interface{}{}
	}
	feature.Properties["path"] = sl.Path
	if sl.Format != "" {
		feature.Properties["format"] = sl.Format
	}
	return nil
}
