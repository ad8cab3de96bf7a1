// Package sentinel1 parses Sentinel-1 SAFE manifests and their per-polarization annotation
// documents.
package sentinel1

import (
	"fmt"
	"regexp"
	"time"

	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
	"github.com/venicegeo/bf-satmeta/xmldoc"
	"github.com/venicegeo/geojson-go/geojson"
)

var spacecraftPattern = regexp.MustCompile(`^S\d[AB]`)

// Metadata is a parsed Sentinel-1 manifest
type Metadata struct {
	model.BasicRecord

	RelativeOrbitNumber int
	SensingStart        time.Time
	SensingEnd          time.Time
	ProductType         string
	Polarizations       []string
	PassDirection       string
	OperationalMode     string
	Annotations         map[string]*Annotation
}

// Fields implements model.Record
func (m *Metadata) Fields() map[string]interface{} {
	fields := m.CommonFields()
	fields["relative_orbit_number"] = m.RelativeOrbitNumber
	fields["sensing_start"] = m.SensingStart
	fields["sensing_end"] = m.SensingEnd
	fields["product_type"] = m.ProductType
	fields["polarizations"] = m.Polarizations
	fields["passdir"] = m.PassDirection
	fields["sensor_operational_mode"] = m.OperationalMode
	if m.Annotations != nil {
		annotations := map[string]interface{}{}
		for polarisation, annotation := range m.Annotations {
			annotations[polarisation] = annotation.Fields()
		}
		fields["annotations"] = annotations
	}
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (m *Metadata) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(m)
}

// SpacecraftFromFilename returns the leading S1A/S1B token of a product or file name
func SpacecraftFromFilename(name string) (string, error) {
	sc := spacecraftPattern.FindString(baseName(name))
	if sc == "" {
		return "", &model.FormatError{Field: "spacecraft", Value: name}
	}
	return sc, nil
}

// relativeOrbitNumber returns the start relative orbit. A start/stop mismatch is reported but
// does not fail the parse.
func relativeOrbitNumber(doc *xmldoc.Document) (int, error) {
	start, err := doc.GetSingleInt("safe:relativeOrbitNumber[@type='start']")
	if err != nil {
		return 0, err
	}
	stop, err := doc.GetSingleInt("safe:relativeOrbitNumber[@type='stop']")
	if err != nil {
		return 0, err
	}
	if start != stop {
		util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf(
			"relativeOrbitNumber range from %d to %d. Only returning %d", start, stop, start))
	}
	return start, nil
}

// ParseMetadata parses a SAFE manifest document
func ParseMetadata(doc *xmldoc.Document) (*Metadata, error) {
	m := &Metadata{}
	m.Source = model.Sentinel1
	var err error

	if m.ID, err = doc.GetInstance("safe:resource", "name", 0); err != nil {
		return nil, err
	}
	if m.Geometry, err = doc.GetSinglePolygonYX("gml:coordinates"); err != nil {
		return nil, err
	}
	if m.RelativeOrbitNumber, err = relativeOrbitNumber(doc); err != nil {
		return nil, err
	}
	if m.SensingStart, err = doc.GetSingleDate("safe:startTime"); err != nil {
		return nil, err
	}
	if m.SensingEnd, err = doc.GetSingleDate("safe:stopTime"); err != nil {
		return nil, err
	}
	if m.ProductType, err = doc.GetSingle("s1sarl1:productType", ""); err != nil {
		return nil, err
	}
	if m.Polarizations, err = doc.GetAll("s1sarl1:transmitterReceiverPolarisation", ""); err != nil {
		return nil, err
	}
	if m.PassDirection, err = doc.GetSingle("s1:pass", ""); err != nil {
		return nil, err
	}
	if m.OperationalMode, err = doc.GetSingle("s1sarl1:mode", ""); err != nil {
		return nil, err
	}

	if m.SensorName, err = SpacecraftFromFilename(m.ID); err != nil {
		return nil, err
	}
	m.AcquiredDate = m.SensingStart
	return m, nil
}

// ParseMetadataBytes parses a manifest held in memory
func ParseMetadataBytes(data []byte) (*Metadata, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(doc)
}

// Annotation holds the fields read from one polarization's annotation document
type Annotation struct {
	Polarisation           string
	Swath                  string
	IncidenceAngleMidSwath float64
}

// Fields returns the normalized view of the annotation
func (a *Annotation) Fields() map[string]interface{} {
	return map[string]interface{}{
		"polarisation":              a.Polarisation,
		"swath":                     a.Swath,
		"incidence_angle_mid_swath": a.IncidenceAngleMidSwath,
	}
}

// ParseAnnotation parses a product annotation document
func ParseAnnotation(doc *xmldoc.Document) (*Annotation, error) {
	a := &Annotation{}
	var err error
	if a.IncidenceAngleMidSwath, err = doc.GetSingleFloat("incidenceAngleMidSwath"); err != nil {
		return nil, err
	}
	if a.Swath, err = doc.GetInstance("adsHeader/swath", "", 0); err != nil {
		return nil, err
	}
	if a.Polarisation, err = doc.GetInstance("adsHeader/polarisation", "", 0); err != nil {
		return nil, err
	}
	return a, nil
}
