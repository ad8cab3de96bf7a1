package landsat

import (
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/geojson-go/geojson"
)

// Rescaling groups
const (
	Radiance    = "RADIANCE"
	Reflectance = "REFLECTANCE"
)

// Rescaling operations
const (
	Mult = "MULT"
	Add  = "ADD"
)

// ExpectedBands is the number of bands every rescaling group must list
var ExpectedBands = map[string]int{
	Reflectance: 9,
	Radiance:    11,
}

// Rescaling holds per-band calibration coefficients, ordered by band number,
// keyed by group (RADIANCE|REFLECTANCE) and operation (MULT|ADD)
type Rescaling map[string]map[string][]float64

// Gain returns the multiplicative coefficients of a group
func (r Rescaling) Gain(group string) []float64 {
	return r[group][Mult]
}

// Bias returns the additive coefficients of a group
func (r Rescaling) Bias(group string) []float64 {
	return r[group][Add]
}

// Metadata is a parsed Landsat-8 MTL document
type Metadata struct {
	model.BasicRecord

	SceneID       string
	ProductID     string
	SpacecraftID  string
	SensorID      string
	NadirOffnadir string

	Path                int
	Row                 int
	ImageQualityOLI     int
	ImageQualityTIRS    int
	UTMZone             int
	ReflectiveLines     int
	ReflectiveSamples   int
	PanchromaticLines   int
	PanchromaticSamples int

	CloudCover       float64
	CloudCoverLand   float64
	RollAngle        float64
	SunAzimuth       float64
	SunElevation     float64
	EarthSunDistance float64

	FootprintProjected *geojson.Polygon
	Rescaling          Rescaling

	captured map[string]bool
}

// Fields implements model.Record
func (m *Metadata) Fields() map[string]interface{} {
	fields := m.CommonFields()
	for _, spec := range fieldSpecs {
		if !m.captured[spec.key] {
			continue
		}
		switch v := spec.target(m).(type) {
		case *string:
			fields[normalizeKey(spec.key)] = *v
		case *int:
			fields[normalizeKey(spec.key)] = *v
		case *float64:
			fields[normalizeKey(spec.key)] = *v
		}
	}
	fields["footprint_projected"] = m.FootprintProjected
	fields["rescaling"] = map[string]map[string][]float64(m.Rescaling)
	if id, err := ParseProductID(m.ProductID); err == nil {
		fields["processing_level"] = id.ProcessingLevel
		fields["collection_category"] = id.CollectionCategory
		fields["collection1"] = IsCollection1DataType(id.ProcessingLevel)
	}
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (m *Metadata) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(m)
}
