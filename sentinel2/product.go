// Package sentinel2 parses Sentinel-2 product and granule metadata documents, and the per-band
// angle grids of a granule.
package sentinel2

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
	"github.com/venicegeo/bf-satmeta/xmldoc"
	"github.com/venicegeo/geojson-go/geojson"
)

// Metadata is a parsed Sentinel-2 product document, with its granules either nested by tile name
// or, for single granule products, flattened into the product
type Metadata struct {
	model.BasicRecord

	ProcessingLevel       string
	OrbitDirection        string
	QuantificationValue   int
	ReflectanceConversion float64
	IrradianceValues      []float64

	Granules map[string]*GranuleMetadata
	Granule  *GranuleMetadata
}

// Fields implements model.Record
func (m *Metadata) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if m.Granule != nil {
		for key, value := range m.Granule.granuleFields() {
			fields[key] = value
		}
	}
	for key, value := range m.CommonFields() {
		fields[key] = value
	}
	fields["processing_level"] = m.ProcessingLevel
	fields["orbit_direction"] = m.OrbitDirection
	fields["quantification_value"] = m.QuantificationValue
	fields["reflectance_conversion"] = m.ReflectanceConversion
	fields["irradiance_values"] = m.IrradianceValues
	if m.Granules != nil {
		granules := map[string]interface{}{}
		for tile, granule := range m.Granules {
			granules[tile] = granule.granuleFields()
		}
		fields["granules"] = granules
	}
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (m *Metadata) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(m)
}

// ParseMetadata parses a product-level document (MTD_MSIL1C.xml, MTD_MSIL2A.xml)
func ParseMetadata(doc *xmldoc.Document) (*Metadata, error) {
	m := &Metadata{}
	m.Source = model.Sentinel2
	var err error

	if m.ID, err = doc.GetSingle("PRODUCT_URI", ""); err != nil {
		return nil, err
	}
	if m.AcquiredDate, err = doc.GetSingleDate("PRODUCT_START_TIME"); err != nil {
		return nil, err
	}
	if m.ProcessingLevel, err = doc.GetSingle("PROCESSING_LEVEL", ""); err != nil {
		return nil, err
	}
	if m.OrbitDirection, err = doc.GetSingle("SENSING_ORBIT_DIRECTION", ""); err != nil {
		return nil, err
	}
	if m.QuantificationValue, err = doc.GetSingleInt("QUANTIFICATION_VALUE"); err != nil {
		return nil, err
	}
	if m.ReflectanceConversion, err = doc.GetSingleFloat("Reflectance_Conversion/U"); err != nil {
		return nil, err
	}
	if m.IrradianceValues, err = doc.GetAllFloat("Reflectance_Conversion/Solar_Irradiance_List/SOLAR_IRRADIANCE"); err != nil {
		return nil, err
	}
	spacecraftName, err := doc.GetSingle("SPACECRAFT_NAME", "")
	if err != nil {
		return nil, err
	}
	if m.SensorName, err = spacecraftFromSpacecraftName(spacecraftName); err != nil {
		return nil, err
	}
	if m.Geometry, err = productFootprint(doc); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseMetadataBytes parses a product-level document held in memory
func ParseMetadataBytes(data []byte) (*Metadata, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(doc)
}

// productFootprint reads the optional global footprint, a list of "lat lon" pairs
func productFootprint(doc *xmldoc.Document) (*geojson.Polygon, error) {
	const tag = "Global_Footprint/EXT_POS_LIST"
	lists, err := doc.GetAll(tag, "")
	if err != nil || len(lists) == 0 {
		return nil, err
	}
	if len(lists) > 1 {
		util.LogAlert(nil, fmt.Sprintf("Found %d %s elements, leaving the product footprint empty", len(lists), tag))
		return nil, nil
	}
	values := strings.Fields(lists[0])
	if len(values)%2 != 0 {
		return nil, &model.CoercionError{Field: tag, Value: lists[0], Err: strconv.ErrSyntax}
	}
	points := make([][]float64, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		lat, err := strconv.ParseFloat(values[i], 64)
		if err != nil {
			return nil, &model.CoercionError{Field: tag, Value: values[i], Err: err}
		}
		lon, err := strconv.ParseFloat(values[i+1], 64)
		if err != nil {
			return nil, &model.CoercionError{Field: tag, Value: values[i+1], Err: err}
		}
		points = append(points, []float64{lon, lat})
	}
	return geometry.PolygonFromPoints(points)
}
