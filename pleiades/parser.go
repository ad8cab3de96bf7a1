// Package pleiades parses Pleiades and Pleiades Neo DIMAP (DIM_*.XML) metadata documents.
package pleiades

import (
	"strings"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/xmldoc"
	"github.com/venicegeo/geojson-go/geojson"
)

const centerValues = "Located_Geometric_Values[LOCATION_TYPE='Center']"

// Angles are the sun and sensor angles at the image center, in degrees
type Angles struct {
	SunAzimuth    float64 `json:"sun_azimuth"`
	SunElevation  float64 `json:"sun_elevation"`
	SensorAzimuth float64 `json:"sensor_azimuth"`
	SensorZenith  float64 `json:"sensor_zenith"`
}

// GainBias is the radiance calibration of one band
type GainBias struct {
	Gain float64 `json:"gain"`
	Bias float64 `json:"bias"`
}

// CalibrationValues lists gains and biases in band display order
type CalibrationValues struct {
	Gain []float64 `json:"gain"`
	Bias []float64 `json:"bias"`
}

// Metadata is a parsed DIMAP document
type Metadata struct {
	model.BasicRecord

	Angles            Angles
	Height            int
	Width             int
	Count             int
	NTiles            int
	Calibration       map[string]GainBias
	BandOrder         []string
	CalibrationValues CalibrationValues
}

// Fields implements model.Record
func (m *Metadata) Fields() map[string]interface{} {
	fields := m.CommonFields()
	fields["angles"] = m.Angles
	fields["height"] = m.Height
	fields["width"] = m.Width
	fields["count"] = m.Count
	fields["ntiles"] = m.NTiles
	fields["calibration"] = m.Calibration
	fields["band_order"] = m.BandOrder
	fields["calibration_values"] = m.CalibrationValues
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (m *Metadata) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(m)
}

func parseAngles(doc *xmldoc.Document) (Angles, error) {
	var angles Angles
	centers, err := doc.Select(centerValues)
	if err != nil {
		return angles, err
	}
	if len(centers) == 0 {
		return angles, &model.MissingFieldError{Field: centerValues}
	}
	center := centers[0]
	for tag, target := range map[string]*float64{
		"SUN_AZIMUTH":     &angles.SunAzimuth,
		"SUN_ELEVATION":   &angles.SunElevation,
		"AZIMUTH_ANGLE":   &angles.SensorAzimuth,
		"INCIDENCE_ANGLE": &angles.SensorZenith,
	} {
		if *target, err = center.GetSingleFloat(tag); err != nil {
			return angles, err
		}
	}
	return angles, nil
}

func parseCalibration(doc *xmldoc.Document) (map[string]GainBias, error) {
	bands, err := doc.Select("Band_Radiance")
	if err != nil {
		return nil, err
	}
	calibration := map[string]GainBias{}
	for _, band := range bands {
		id, err := band.GetSingle("BAND_ID", "")
		if err != nil {
			return nil, err
		}
		var gb GainBias
		if gb.Gain, err = band.GetSingleFloat("GAIN"); err != nil {
			return nil, err
		}
		if gb.Bias, err = band.GetSingleFloat("BIAS"); err != nil {
			return nil, err
		}
		calibration[id] = gb
	}
	return calibration, nil
}

// orderCalibration lists the calibration of every band of order, in that order
func orderCalibration(calibration map[string]GainBias, order []string) (CalibrationValues, error) {
	values := CalibrationValues{Gain: make([]float64, 0, len(order)), Bias: make([]float64, 0, len(order))}
	for _, band := range order {
		gb, ok := calibration[band]
		if !ok {
			return values, &model.MissingFieldError{Field: "Band_Radiance[BAND_ID='" + band + "']"}
		}
		values.Gain = append(values.Gain, gb.Gain)
		values.Bias = append(values.Bias, gb.Bias)
	}
	return values, nil
}

// ParseDocument parses a DIMAP document
func ParseDocument(doc *xmldoc.Document) (*Metadata, error) {
	m := &Metadata{}
	var err error

	if m.Angles, err = parseAngles(doc); err != nil {
		return nil, err
	}

	instrument, err := doc.GetSingle("INSTRUMENT", "")
	if err != nil {
		return nil, err
	}
	index, err := doc.GetSingle("INSTRUMENT_INDEX", "")
	if err != nil {
		return nil, err
	}
	m.SensorName = instrument + index
	m.Source = model.Pleiades
	if strings.HasPrefix(instrument, "PNEO") {
		m.Source = model.PleiadesNeo
	}

	date, err := doc.GetSingle("IMAGING_DATE", "")
	if err != nil {
		return nil, err
	}
	clock, err := doc.GetSingle("IMAGING_TIME", "")
	if err != nil {
		return nil, err
	}
	if m.AcquiredDate, err = model.ParseTime(date + "T" + clock); err != nil {
		return nil, &model.CoercionError{Field: "sensing_time", Value: date + "T" + clock, Err: err}
	}

	lons, err := doc.GetAllFloat("Dataset_Extent/Vertex/LON")
	if err != nil {
		return nil, err
	}
	lats, err := doc.GetAllFloat("Dataset_Extent/Vertex/LAT")
	if err != nil {
		return nil, err
	}
	if m.Geometry, err = geometry.PolygonFromLonLat(lons, lats); err != nil {
		return nil, err
	}

	if m.Calibration, err = parseCalibration(doc); err != nil {
		return nil, err
	}
	if m.BandOrder, err = doc.GetAll("Band_Display_Order/*", ""); err != nil {
		return nil, err
	}
	if m.CalibrationValues, err = orderCalibration(m.Calibration, m.BandOrder); err != nil {
		return nil, err
	}

	if m.NTiles, err = doc.GetSingleInt("NTILES"); err != nil {
		return nil, err
	}
	if m.ID, err = doc.GetSingle("SOURCE_ID", ""); err != nil {
		return nil, err
	}
	for tag, target := range map[string]*int{"NROWS": &m.Height, "NCOLS": &m.Width, "NBANDS": &m.Count} {
		if *target, err = doc.GetSingleInt(tag); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ParseMetadata parses a DIMAP document given either as an XML string or as a file path
func ParseMetadata(fileOrXML string) (*Metadata, error) {
	var doc *xmldoc.Document
	var err error
	if strings.HasPrefix(fileOrXML, "<?xml") {
		doc, err = xmldoc.ParseString(fileOrXML)
	} else {
		doc, err = xmldoc.ParseFile(fileOrXML)
	}
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc)
}
