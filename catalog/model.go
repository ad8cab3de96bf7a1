package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// ConnectionProvider is a function that can provide a database connection.
type ConnectionProvider func(util.LogContext) (*sql.DB, error)

// Product is one catalog row
type Product struct {
	Title       string
	Format      string
	Spacecraft  string
	SensingTime time.Time
	Path        string
	Footprint   *geojson.Polygon
	Metadata    map[string]interface{}
}

// ProductFromRecord builds the catalog row of a parsed record found at path.
// Metadata holds the record's feature properties so it is always JSON-encodable.
// Records without a footprint cannot be cataloged.
func ProductFromRecord(rec model.Record, path string) (*Product, error) {
	if rec.Footprint() == nil {
		return nil, fmt.Errorf("product %s has no footprint: %w", rec.Title(), &model.MissingFieldError{Field: model.KeyFootprint})
	}
	feature, err := model.NewRecordFeature(rec)
	if err != nil {
		return nil, err
	}
	return &Product{
		Title:       rec.Title(),
		Format:      string(rec.Family()),
		Spacecraft:  rec.Spacecraft(),
		SensingTime: rec.SensingTime(),
		Path:        path,
		Footprint:   rec.Footprint(),
		Metadata:    feature.Properties,
	}, nil
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (p *Product) GeoJSONFeature() (*geojson.Feature, error) {
	var geometry interface{}
	if p.Footprint != nil {
		geometry = p.Footprint
	}
	properties := make(map[string]interface{}, len(p.Metadata))
	for key, value := range p.Metadata {
		properties[key] = value
	}
	feature := geojson.NewFeature(geometry, p.Title, properties)
	if err := (model.Properties{
		model.KeyTitle:       p.Title,
		model.KeySpacecraft:  p.Spacecraft,
		model.KeySensingTime: p.SensingTime,
	}).Apply(feature); err != nil {
		return nil, err
	}
	if err := (model.SourceLocation{Path: p.Path, Format: p.Format}).Apply(feature); err != nil {
		return nil, err
	}
	if p.Footprint != nil {
		feature.Bbox = feature.ForceBbox()
	}
	return feature, nil
}

// Query selects catalog rows; zero fields do not filter
type Query struct {
	BBox       geojson.BoundingBox
	Spacecraft string
	Format     string
	From       time.Time
	To         time.Time
	Limit      int
}
