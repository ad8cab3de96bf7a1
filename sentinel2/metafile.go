package sentinel2

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/venicegeo/bf-satmeta/archive"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
)

const inspire = "INSPIRE"

var productMemberPattern = regexp.MustCompile(`^[\w_\.]*?\.SAFE/[\w_\.]*?\.xml$`)

// Options controls how granules are attached to the product record
type Options struct {
	// CheckGranules makes a product without granules an error
	CheckGranules bool
	// FlattenSingleGranule merges the only granule into the product record
	FlattenSingleGranule bool
	// TileName restricts granule discovery to one tile, e.g. 32UPF
	TileName string
}

func isZipInput(p string) (bool, error) {
	kind, err := archive.KindOf(p)
	if err != nil {
		return false, err
	}
	switch kind {
	case archive.Directory:
		return false, nil
	case archive.Zip:
		return true, nil
	}
	return false, &model.UnsupportedInputError{Path: p, Reason: "input must be a .SAFE folder or a .zip file"}
}

// ReadMetafile returns the product-level document of a .SAFE folder or zipped product
func ReadMetafile(p string) ([]byte, error) {
	zipped, err := isZipInput(p)
	if err != nil {
		return nil, err
	}

	if !zipped {
		names, err := archive.Glob(p, "*.xml")
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if !strings.Contains(filepath.Base(name), inspire) {
				return os.ReadFile(name)
			}
		}
		return nil, &model.MissingFileError{Path: p, Pattern: "*.xml"}
	}

	z, err := archive.OpenZip(p)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	for _, name := range z.Names() {
		if productMemberPattern.MatchString(name) && !strings.Contains(name, inspire) {
			return z.Read(name)
		}
	}
	return nil, &model.MissingFileError{Path: p, Pattern: productMemberPattern.String()}
}

func granuleGlob(tileName string) string {
	tile := "*"
	if tileName != "" {
		tile = strings.TrimLeft(strings.ToUpper(tileName), "T")
	}
	return filepath.Join("GRANULE", "*_T"+tile+"*", "*.xml")
}

func granuleMemberPattern(tileName string) *regexp.Regexp {
	tile := ""
	if tileName != "" {
		tile = "T" + regexp.QuoteMeta(strings.TrimLeft(strings.ToUpper(tileName), "T"))
	}
	return regexp.MustCompile(`^([\w_\.]*?\.SAFE)/GRANULE/([\w_\.]*?)` + tile + `([\w_\.]*?)/([\w_\.]*?\.xml)$`)
}

// ReadGranuleMetafiles returns the granule documents of a product, in name order. An empty
// tileName selects every granule.
func ReadGranuleMetafiles(p string, tileName string) ([][]byte, error) {
	zipped, err := isZipInput(p)
	if err != nil {
		return nil, err
	}

	var documents [][]byte
	if !zipped {
		names, err := archive.Glob(p, granuleGlob(tileName))
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			data, err := os.ReadFile(name)
			if err != nil {
				return nil, err
			}
			documents = append(documents, data)
		}
		return documents, nil
	}

	z, err := archive.OpenZip(p)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	pattern := granuleMemberPattern(tileName)
	var members []string
	for _, name := range z.Names() {
		if pattern.MatchString(name) {
			members = append(members, name)
		}
	}
	sort.Strings(members)
	util.LogDebug(nil, fmt.Sprintf("Found %d granule metadata files in %s", len(members), p))
	for _, member := range members {
		data, err := z.Read(member)
		if err != nil {
			return nil, err
		}
		documents = append(documents, data)
	}
	return documents, nil
}

// FindParseGranuleMetadata finds and parses the granules of a product, keyed by tile name
func FindParseGranuleMetadata(p string, tileName string) (map[string]*GranuleMetadata, error) {
	documents, err := ReadGranuleMetafiles(p, tileName)
	if err != nil {
		return nil, err
	}
	granules := map[string]*GranuleMetadata{}
	for _, data := range documents {
		granule, err := ParseGranuleMetadataBytes(data)
		if err != nil {
			return nil, err
		}
		granules[granule.TileName] = granule
	}
	return granules, nil
}

// FindParseMetadata finds and parses the product document and the granule documents of a
// .SAFE folder or zipped product
func FindParseMetadata(p string, opts Options) (*Metadata, error) {
	data, err := ReadMetafile(p)
	if err != nil {
		return nil, err
	}
	m, err := ParseMetadataBytes(data)
	if err != nil {
		return nil, err
	}
	granules, err := FindParseGranuleMetadata(p, opts.TileName)
	if err != nil {
		return nil, err
	}

	if opts.CheckGranules && len(granules) == 0 {
		return nil, &model.GranuleError{Path: p, Reason: "no granule metadata found"}
	}
	if opts.FlattenSingleGranule {
		if len(granules) != 1 {
			return nil, &model.GranuleError{Path: p, Tiles: tileNames(granules),
				Reason: "cannot merge granule metadata unless the product holds exactly one granule"}
		}
		for _, granule := range granules {
			m.Granule = granule
		}
		return m, nil
	}
	m.Granules = granules
	return m, nil
}

func tileNames(granules map[string]*GranuleMetadata) []string {
	names := make([]string, 0, len(granules))
	for name := range granules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
