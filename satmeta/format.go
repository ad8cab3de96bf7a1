// Package satmeta dispatches product paths to the metadata adapter of their satellite family
// and parses batches of products.
package satmeta

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/venicegeo/bf-satmeta/model"
)

// Format is the closed set of supported product formats
type Format int

// Supported formats
const (
	Unknown Format = iota
	Landsat8
	Sentinel1
	Sentinel2
	Pleiades
	PleiadesNeo
)

var formatNames = map[Format]string{
	Landsat8:    "landsat8",
	Sentinel1:   "sentinel1",
	Sentinel2:   "sentinel2",
	Pleiades:    "pleiades",
	PleiadesNeo: "pleiades_neo",
}

// Formats lists every supported format
var Formats = []Format{Landsat8, Sentinel1, Sentinel2, Pleiades, PleiadesNeo}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// Family is the model family records of this format belong to
func (f Format) Family() model.Family {
	return model.Family(f.String())
}

// ParseFormat resolves a format name as printed by String
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for format, formatName := range formatNames {
		if name == formatName {
			return format, nil
		}
	}
	return Unknown, fmt.Errorf("unknown format '%s'", name)
}

var (
	landsatPattern   = regexp.MustCompile(`^L[COTEM](08_|8\d{13})|_MTL\.TXT$`)
	sentinel1Pattern = regexp.MustCompile(`^S1[AB]_`)
	sentinel2Pattern = regexp.MustCompile(`^S2[AB]_`)
	neoPattern       = regexp.MustCompile(`PNEO`)
	pleiadesPattern  = regexp.MustCompile(`PHR|^DIM_`)
)

// DetectFormat picks the format of a product from its base name
func DetectFormat(path string) (Format, error) {
	base := strings.ToUpper(filepath.Base(filepath.Clean(path)))
	switch {
	case sentinel1Pattern.MatchString(base):
		return Sentinel1, nil
	case sentinel2Pattern.MatchString(base):
		return Sentinel2, nil
	case landsatPattern.MatchString(base):
		return Landsat8, nil
	case neoPattern.MatchString(base):
		return PleiadesNeo, nil
	case pleiadesPattern.MatchString(base):
		return Pleiades, nil
	}
	return Unknown, &model.UnsupportedInputError{Path: path, Reason: "product name matches no known satellite family"}
}
