package model

import (
	"time"

	"github.com/venicegeo/geojson-go/geojson"
)

// BasicRecord holds the fields common to all parsed metadata records
type BasicRecord struct {
	ID           string
	SensorName   string
	AcquiredDate time.Time
	Geometry     *geojson.Polygon
	Source       Family
}

// Title implements Record
func (br BasicRecord) Title() string { return br.ID }

// Spacecraft implements Record
func (br BasicRecord) Spacecraft() string { return br.SensorName }

// SensingTime implements Record
func (br BasicRecord) SensingTime() time.Time { return br.AcquiredDate }

// Footprint implements Record
func (br BasicRecord) Footprint() *geojson.Polygon { return br.Geometry }

// Family implements Record
func (br BasicRecord) Family() Family { return br.Source }

// CommonFields returns the keys every record carries
func (br BasicRecord) CommonFields() map[string]interface{} {
	fields := map[string]interface{}{
		KeyTitle:       br.ID,
		KeySpacecraft:  br.SensorName,
		KeySensingTime: br.AcquiredDate,
	}
	if br.Geometry != nil {
		fields[KeyFootprint] = br.Geometry
	}
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (br BasicRecord) GeoJSONFeature() (*geojson.Feature, error) {
	var geometry interface{}
	if br.Geometry != nil {
		geometry = br.Geometry
	}
	f := geojson.NewFeature(geometry, br.ID, map[string]interface{}{
		KeyTitle:       br.ID,
		KeySpacecraft:  br.SensorName,
		KeySensingTime: FormatTime(br.AcquiredDate),
		"family":       string(br.Source),
	})
	if br.Geometry != nil {
		f.Bbox = f.ForceBbox()
	}
	return f, nil
}

// NewRecordFeature converts any record into a feature carrying its footprint as geometry and all
// of its normalized fields as properties, then applies the given mixins in order
func NewRecordFeature(rec Record, mixins ...GeoJSONFeatureMixin) (*geojson.Feature, error) {
	basic := BasicRecord{
		ID:           rec.Title(),
		SensorName:   rec.Spacecraft(),
		AcquiredDate: rec.SensingTime(),
		Geometry:     rec.Footprint(),
		Source:       rec.Family(),
	}
	feature, err := basic.GeoJSONFeature()
	if err != nil {
		return nil, err
	}

	if err = Properties(rec.Fields()).Apply(feature); err != nil {
		return nil, err
	}
	for _, mixin := range mixins {
		if err = mixin.Apply(feature); err != nil {
			return nil, err
		}
	}
	return feature, nil
}

// MultiResult is a container type for bundling multiple records together,
// e.g. as results from a catalog search or a batch parse
type MultiResult struct {
	FeatureCreators []GeoJSONFeatureCreator
}

// GeoJSONFeatureCollection implements the GeoJSONFeatureCollectionCreator interface
func (result MultiResult) GeoJSONFeatureCollection() (*geojson.FeatureCollection, error) {
	var err error
	features := make([]*geojson.Feature, len(result.FeatureCreators))
	for i, creator := range result.FeatureCreators {
		features[i], err = creator.GeoJSONFeature()
		if err != nil {
			return nil, err
		}
	}

	return geojson.NewFeatureCollection(features), nil
}
