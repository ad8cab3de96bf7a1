package pleiades

import (
	"path/filepath"

	"github.com/venicegeo/bf-satmeta/archive"
)

// Variant selects the product folder layout
type Variant int

// Product folder layouts
const (
	Pleiades Variant = iota
	Neo
)

func (v Variant) String() string {
	if v == Neo {
		return "Pleiades Neo"
	}
	return "Pleiades"
}

// imageFolder is the glob of the folder holding the DIM file; Neo keeps it in the multispectral one
func (v Variant) imageFolder() string {
	if v == Neo {
		return "IMG_*_MS*"
	}
	return "IMG_*"
}

// FindMetafile returns the only DIM_*.XML file of a product folder
func FindMetafile(dir string, variant Variant) (string, error) {
	pattern := filepath.Join(variant.imageFolder(), "DIM_*.XML")
	matches, err := archive.Glob(dir, pattern)
	if err != nil {
		return "", err
	}
	return archive.ExactlyOne(dir, pattern, matches)
}

// FindParseMetadata parses the DIM file of a product folder, or path itself when it is a file
func FindParseMetadata(path string, variant Variant) (*Metadata, error) {
	kind, err := archive.KindOf(path)
	if err != nil {
		return nil, err
	}
	if kind == archive.Directory {
		if path, err = FindMetafile(path, variant); err != nil {
			return nil, err
		}
	}
	return ParseMetadata(path)
}
