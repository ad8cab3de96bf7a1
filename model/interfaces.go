package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// GeoJSONFeatureCreator is an interface for data that can convert itself to a GeoJSON feature
type GeoJSONFeatureCreator interface {
	GeoJSONFeature() (*geojson.Feature, error)
}

// GeoJSONFeatureCollectionCreator is an interface for data that can convert itself to a GeoJSON feature collection
type GeoJSONFeatureCollectionCreator interface {
	GeoJSONFeatureCollection() (*geojson.FeatureCollection, error)
}

// GeoJSONFeatureMixin is an interface for data that can be used to augment an existing GeoJSON feature
type GeoJSONFeatureMixin interface {
	Apply(*geojson.Feature) error
}

// Record is the normalized output of every metadata adapter
type Record interface {
	GeoJSONFeatureCreator
	Family() Family
	SensingTime() time.Time
	Title() string
	Spacecraft() string
	Footprint() *geojson.Polygon
	// Fields returns the normalized key/value view of the record
	Fields() map[string]interface{}
}
