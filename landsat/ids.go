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
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/venicegeo/bf-satmeta/model"
)

// Scene IDs come in the form LC80060522017107LGN00
var sceneIDPattern = regexp.MustCompile(`^L[COTEM]8([0-9]{3})([0-9]{3})([0-9]{4})([0-9]{3})[A-Z]{3}[0-9]{2}$`)

// IsValidSceneID returns whether an ID is a valid Landsat-8 scene ID
func IsValidSceneID(sceneID string) bool {
	return sceneIDPattern.MatchString(sceneID)
}

// Product IDs come in the form LC08_L1TP_012029_20170213_20170415_01_T1
var productIDPattern = regexp.MustCompile(`^L([COTEM])(\d{2})_(L\d[A-Z]{2})_(\d{3})(\d{3})_(\d{8})_(\d{8})_(\d{2})_([A-Z0-9]{2})$`)

var collection1DataTypes = []string{"L1TP", "L1GT", "L1GS"}

// IsCollection1DataType returns whether a data type is a "Collection 1" type
// Reference: https://landsat.usgs.gov/landsat-processing-details
func IsCollection1DataType(dataType string) bool {
	dataType = strings.ToUpper(dataType)
	for _, t := range collection1DataTypes {
		if dataType == t {
			return true
		}
	}
	return false
}

// ProductID is a decoded Landsat product identifier
type ProductID struct {
	Sensor             string
	Satellite          int
	ProcessingLevel    string
	Path               int
	Row                int
	AcquisitionDate    time.Time
	ProcessingDate     time.Time
	Collection         int
	CollectionCategory string
}

// ParseProductID decodes a Landsat product identifier
func ParseProductID(productID string) (*ProductID, error) {
	m := productIDPattern.FindStringSubmatch(productID)
	if m == nil {
		return nil, &model.FormatError{Field: "product id", Value: productID}
	}
	id := ProductID{Sensor: m[1], ProcessingLevel: m[3], CollectionCategory: m[9]}
	id.Satellite, _ = strconv.Atoi(m[2])
	id.Path, _ = strconv.Atoi(m[4])
	id.Row, _ = strconv.Atoi(m[5])
	id.Collection, _ = strconv.Atoi(m[8])

	var err error
	if id.AcquisitionDate, err = time.Parse("20060102", m[6]); err != nil {
		return nil, &model.CoercionError{Field: "product id acquisition date", Value: m[6], Err: err}
	}
	if id.ProcessingDate, err = time.Parse("20060102", m[7]); err != nil {
		return nil, &model.CoercionError{Field: "product id processing date", Value: m[7], Err: err}
	}
	return &id, nil
}
