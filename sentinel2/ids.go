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

package sentinel2

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-satmeta/model"
)

// https://earth.esa.int/web/sentinel/user-guides/sentinel-2-msi/naming-convention
var productNamePattern = regexp.MustCompile(`^(S2[AB])_MSI(L1C|L2A)_([0-9]{8}T[0-9]{6})_N[0-9]{4}_R([0-9]{3})_T([0-9]{2})([A-Z])([A-Z]{2})_[0-9]{8}T[0-9]{6}`)

var (
	spacecraftNamePattern = regexp.MustCompile(`^Sentinel-(2[AB])`)
	productPrefixPattern  = regexp.MustCompile(`^S2[AB]`)
	tileNamePattern       = regexp.MustCompile(`\d{2}[A-Z]{3}`)
	tileIDPattern         = regexp.MustCompile(`T(\d{2}[A-Z]{3})`)
)

// bandNames lists the band names by band id
var bandNames = []string{"1", "2", "3", "4", "5", "6", "7", "8", "8A", "9", "10", "11", "12"}

// BandName returns the name of a band id, e.g. 8 is "8A"
func BandName(bandID int) (string, error) {
	if bandID < 0 || bandID >= len(bandNames) {
		return "", &model.IndexError{Tag: "bandId", Index: bandID, Found: len(bandNames)}
	}
	return bandNames[bandID], nil
}

// BandID returns the band id of a band name such as "8A" or "B8A"
func BandID(name string) (int, error) {
	name = strings.TrimLeft(strings.ToUpper(name), "B")
	name = strings.TrimLeft(name, "0")
	for id, band := range bandNames {
		if band == name {
			return id, nil
		}
	}
	return 0, &model.FormatError{Field: "band id", Value: name}
}

// ProductName is a decoded Sentinel-2 product name
type ProductName struct {
	Spacecraft      string
	ProcessingLevel string
	SensingTime     time.Time
	RelativeOrbit   int
	UTMZone         string
	LatitudeBand    string
	Square          string
}

// TileName returns the MGRS tile name, e.g. 32UPF
func (p ProductName) TileName() string {
	return p.UTMZone + p.LatitudeBand + p.Square
}

// ParseProductName decodes a Sentinel-2 product name (compact naming convention)
func ParseProductName(name string) (*ProductName, error) {
	name = filepath.Base(name)
	m := productNamePattern.FindStringSubmatch(name)
	if m == nil {
		return nil, &model.FormatError{Field: "product name", Value: name}
	}
	sensing, err := time.Parse("20060102T150405", m[3])
	if err != nil {
		return nil, &model.CoercionError{Field: "product name sensing time", Value: m[3], Err: err}
	}
	orbit, _ := strconv.Atoi(m[4])
	return &ProductName{
		Spacecraft:      m[1],
		ProcessingLevel: "Level-" + strings.TrimPrefix(m[2], "L"),
		SensingTime:     sensing,
		RelativeOrbit:   orbit,
		UTMZone:         m[5],
		LatitudeBand:    m[6],
		Square:          m[7],
	}, nil
}

// SpacecraftFromProductName returns the S2A/S2B prefix of a product name
func SpacecraftFromProductName(name string) (string, error) {
	sc := productPrefixPattern.FindString(name)
	if sc == "" {
		return "", &model.FormatError{Field: "spacecraft", Value: name}
	}
	return sc, nil
}

// FindTileName returns the first tile name (two digits, three letters) of a file name
func FindTileName(name string) (string, error) {
	tile := tileNamePattern.FindString(filepath.Base(name))
	if tile == "" {
		return "", &model.FormatError{Field: "tile name", Value: name}
	}
	return tile, nil
}

func tileNameFromTileID(tileID string) (string, error) {
	m := tileIDPattern.FindStringSubmatch(tileID)
	if m == nil {
		return "", &model.FormatError{Field: "tile name", Value: tileID}
	}
	return m[1], nil
}

func spacecraftFromSpacecraftName(name string) (string, error) {
	m := spacecraftNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", &model.FormatError{Field: "spacecraft", Value: name}
	}
	return "S" + m[1], nil
}
