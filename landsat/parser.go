// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package landsat

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
)

type fieldKind int

const (
	stringField fieldKind = iota
	intField
	floatField
)

// fieldSpec maps one declared MTL key to its pattern and to the Metadata field it fills
type fieldSpec struct {
	key     string
	kind    fieldKind
	pattern *regexp.Regexp
	target  func(m *Metadata) interface{}
}

const floatPattern = `([+-]?\d+\.?\d*(?:[Ee][+-]?\d+)?)`

var prefixRemove = []string{"LANDSAT_", "WRS_"}

func stringSpec(key string, target func(m *Metadata) interface{}) fieldSpec {
	return fieldSpec{key, stringField, regexp.MustCompile(key + `\s=\s"(.*)"`), target}
}

func intSpec(key string, target func(m *Metadata) interface{}) fieldSpec {
	return fieldSpec{key, intField, regexp.MustCompile(key + `\s=\s(-?\d+)`), target}
}

func floatSpec(key string, target func(m *Metadata) interface{}) fieldSpec {
	return fieldSpec{key, floatField, regexp.MustCompile(key + `\s=\s(-?\d+\.?\d*)`), target}
}

// Declared fields, tried in this order on every line
var fieldSpecs = []fieldSpec{
	stringSpec("LANDSAT_SCENE_ID", func(m *Metadata) interface{} { return &m.SceneID }),
	stringSpec("LANDSAT_PRODUCT_ID", func(m *Metadata) interface{} { return &m.ProductID }),
	stringSpec("SPACECRAFT_ID", func(m *Metadata) interface{} { return &m.SpacecraftID }),
	stringSpec("SENSOR_ID", func(m *Metadata) interface{} { return &m.SensorID }),
	stringSpec("NADIR_OFFNADIR", func(m *Metadata) interface{} { return &m.NadirOffnadir }),
	intSpec("WRS_PATH", func(m *Metadata) interface{} { return &m.Path }),
	intSpec("WRS_ROW", func(m *Metadata) interface{} { return &m.Row }),
	intSpec("IMAGE_QUALITY_OLI", func(m *Metadata) interface{} { return &m.ImageQualityOLI }),
	intSpec("IMAGE_QUALITY_TIRS", func(m *Metadata) interface{} { return &m.ImageQualityTIRS }),
	intSpec("UTM_ZONE", func(m *Metadata) interface{} { return &m.UTMZone }),
	intSpec("REFLECTIVE_LINES", func(m *Metadata) interface{} { return &m.ReflectiveLines }),
	intSpec("REFLECTIVE_SAMPLES", func(m *Metadata) interface{} { return &m.ReflectiveSamples }),
	intSpec("PANCHROMATIC_LINES", func(m *Metadata) interface{} { return &m.PanchromaticLines }),
	intSpec("PANCHROMATIC_SAMPLES", func(m *Metadata) interface{} { return &m.PanchromaticSamples }),
	floatSpec("CLOUD_COVER", func(m *Metadata) interface{} { return &m.CloudCover }),
	floatSpec("CLOUD_COVER_LAND", func(m *Metadata) interface{} { return &m.CloudCoverLand }),
	floatSpec("ROLL_ANGLE", func(m *Metadata) interface{} { return &m.RollAngle }),
	floatSpec("SUN_AZIMUTH", func(m *Metadata) interface{} { return &m.SunAzimuth }),
	floatSpec("SUN_ELEVATION", func(m *Metadata) interface{} { return &m.SunElevation }),
	floatSpec("EARTH_SUN_DISTANCE", func(m *Metadata) interface{} { return &m.EarthSunDistance }),
}

// The acquisition date and time are captured separately and recombined into sensing_time
const (
	dateAcquired    = "DATE_ACQUIRED"
	sceneCenterTime = "SCENE_CENTER_TIME"
)

var specialPatterns = []struct {
	key     string
	pattern *regexp.Regexp
}{
	{dateAcquired, regexp.MustCompile(`DATE_ACQUIRED\s=\s([\d-]*)`)},
	{sceneCenterTime, regexp.MustCompile(`SCENE_CENTER_TIME\s=\s"([\d:\.]*Z)"`)},
}

var (
	cornerPattern     = regexp.MustCompile(`CORNER_([A-Z_]+)_PRODUCT\s=\s` + floatPattern)
	rescalingPattern  = regexp.MustCompile(`(RADIANCE|REFLECTANCE)_(MULT|ADD)_BAND_(\d{1,2})\s=\s` + floatPattern)
	spacecraftPattern = regexp.MustCompile(`(L)ANDSAT_(\d)`)
)

var (
	geographicCorners = geometry.CornerFields{Prefix: "CORNER_", Suffix: "_PRODUCT", XExt: "_LON", YExt: "_LAT"}
	projectedCorners  = geometry.CornerFields{Prefix: "CORNER_", Suffix: "_PRODUCT", XExt: "_PROJECTION_X", YExt: "_PROJECTION_Y"}
)

// normalizeKey strips the LANDSAT_/WRS_ prefixes and lowercases an MTL key
func normalizeKey(key string) string {
	for _, prefix := range prefixRemove {
		key = strings.TrimPrefix(key, prefix)
	}
	return strings.ToLower(key)
}

// scan holds everything captured by the line pass, before postprocessing
type scan struct {
	values    map[string]string
	corners   map[string]float64
	rescaling map[string]map[string]map[int]float64
}

func newScan() *scan {
	return &scan{
		values:    map[string]string{},
		corners:   map[string]float64{},
		rescaling: map[string]map[string]map[int]float64{},
	}
}

// scanLine applies the declared patterns, then the corner and rescaling patterns, to one line.
// The first capture of a key wins; later lines repeating it are ignored.
func (s *scan) scanLine(line string) error {
	for _, spec := range fieldSpecs {
		if m := spec.pattern.FindStringSubmatch(line); m != nil {
			if _, seen := s.values[spec.key]; !seen {
				s.values[spec.key] = m[1]
			}
			return nil
		}
	}
	for _, special := range specialPatterns {
		if m := special.pattern.FindStringSubmatch(line); m != nil {
			if _, seen := s.values[special.key]; !seen {
				s.values[special.key] = m[1]
			}
			return nil
		}
	}
	if m := cornerPattern.FindStringSubmatch(line); m != nil {
		key := "CORNER_" + m[1] + "_PRODUCT"
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return &model.CoercionError{Field: key, Value: m[2], Err: err}
		}
		if _, seen := s.corners[key]; !seen {
			s.corners[key] = value
		}
		return nil
	}
	if m := rescalingPattern.FindStringSubmatch(line); m != nil {
		group, operation := m[1], m[2]
		band, _ := strconv.Atoi(m[3])
		value, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return &model.CoercionError{Field: fmt.Sprintf("%s_%s_BAND_%d", group, operation, band), Value: m[4], Err: err}
		}
		if s.rescaling[group] == nil {
			s.rescaling[group] = map[string]map[int]float64{}
		}
		if s.rescaling[group][operation] == nil {
			s.rescaling[group][operation] = map[int]float64{}
		}
		if _, seen := s.rescaling[group][operation][band]; !seen {
			s.rescaling[group][operation][band] = value
		}
	}
	return nil
}

// ParseMetadata parses the lines of a Landsat MTL document into a normalized record
func ParseMetadata(lines []string) (*Metadata, error) {
	s := newScan()
	for _, line := range lines {
		if err := s.scanLine(line); err != nil {
			return nil, err
		}
	}
	return s.build()
}

// ParseMetadataString parses an MTL document held in memory
func ParseMetadataString(mtl string) (*Metadata, error) {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(mtl))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseMetadata(lines)
}

func (s *scan) build() (*Metadata, error) {
	m := &Metadata{captured: map[string]bool{}}
	m.Source = model.Landsat8

	for _, spec := range fieldSpecs {
		raw, ok := s.values[spec.key]
		if !ok {
			continue
		}
		if err := assign(spec, raw, m); err != nil {
			return nil, err
		}
		m.captured[spec.key] = true
	}

	var err error
	if m.Geometry, err = geometry.PolygonFromCorners(s.corners, geographicCorners); err != nil {
		return nil, err
	}
	if m.FootprintProjected, err = geometry.PolygonFromCorners(s.corners, projectedCorners); err != nil {
		return nil, err
	}

	if m.Rescaling, err = collapseRescaling(s.rescaling); err != nil {
		return nil, err
	}

	date, ok := s.values[dateAcquired]
	if !ok {
		return nil, &model.MissingFieldError{Field: dateAcquired}
	}
	clock, ok := s.values[sceneCenterTime]
	if !ok {
		return nil, &model.MissingFieldError{Field: sceneCenterTime}
	}
	if m.AcquiredDate, err = model.ParseTime(date + "T" + clock); err != nil {
		return nil, &model.CoercionError{Field: "sensing_time", Value: date + "T" + clock, Err: err}
	}

	if !m.captured["SPACECRAFT_ID"] {
		return nil, &model.MissingFieldError{Field: "SPACECRAFT_ID"}
	}
	sc := spacecraftPattern.FindStringSubmatch(m.SpacecraftID)
	if sc == nil {
		return nil, &model.FormatError{Field: "spacecraft", Value: m.SpacecraftID}
	}
	m.SensorName = sc[1] + sc[2]

	if !m.captured["LANDSAT_PRODUCT_ID"] {
		return nil, &model.MissingFieldError{Field: "LANDSAT_PRODUCT_ID"}
	}
	m.ID = m.ProductID

	if m.captured["LANDSAT_SCENE_ID"] && !IsValidSceneID(m.SceneID) {
		util.LogAlert(nil, fmt.Sprintf("Product %s carries an unexpected scene id %q", m.ProductID, m.SceneID))
	}

	return m, nil
}

func assign(spec fieldSpec, raw string, m *Metadata) error {
	switch target := spec.target(m).(type) {
	case *string:
		*target = raw
	case *int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return &model.CoercionError{Field: spec.key, Value: raw, Err: err}
		}
		*target = v
	case *float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return &model.CoercionError{Field: spec.key, Value: raw, Err: err}
		}
		*target = v
	}
	return nil
}

// collapseRescaling checks every captured group/operation holds the expected number of bands
// and orders the coefficients by band number
func collapseRescaling(raw map[string]map[string]map[int]float64) (Rescaling, error) {
	rescaling := Rescaling{}
	for group, operations := range raw {
		expected, known := ExpectedBands[group]
		for operation, bands := range operations {
			if known && len(bands) != expected {
				return nil, &model.BandCountError{Group: group, Operation: operation, Expected: expected, Found: len(bands)}
			}
			numbers := make([]int, 0, len(bands))
			for band := range bands {
				numbers = append(numbers, band)
			}
			sort.Ints(numbers)
			values := make([]float64, len(numbers))
			for i, band := range numbers {
				values[i] = bands[band]
			}
			if rescaling[group] == nil {
				rescaling[group] = map[string][]float64{}
			}
			rescaling[group][operation] = values
		}
	}
	return rescaling, nil
}
