package landsat

import (
	"os"
	"strings"

	"github.com/venicegeo/bf-satmeta/archive"
	"github.com/venicegeo/bf-satmeta/model"
)

const metafileMarker = "_MTL"

// FindMetafile locates the MTL document of a product and returns its content.
// Accepted inputs are a folder holding one *_MTL.txt file, a TAR archive (optionally gzipped)
// with one member whose name contains _MTL, or the MTL text file itself.
func FindMetafile(path string) (string, error) {
	kind, err := archive.KindOf(path)
	if err != nil {
		return "", err
	}

	switch kind {
	case archive.Directory:
		matches, err := archive.Glob(path, "*"+metafileMarker+".txt")
		if err != nil {
			return "", err
		}
		file, err := archive.ExactlyOne(path, "*"+metafileMarker+".txt", matches)
		if err != nil {
			return "", err
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case archive.Tar:
		isMetafile := func(name string) bool { return strings.Contains(name, metafileMarker) }
		names, contents, err := archive.ScanTar(path, isMetafile)
		if err != nil {
			return "", err
		}
		var candidates []string
		for _, name := range names {
			if isMetafile(name) {
				candidates = append(candidates, name)
			}
		}
		member, err := archive.ExactlyOne(path, "*"+metafileMarker+"*", candidates)
		if err != nil {
			return "", err
		}
		return string(contents[member]), nil

	case archive.Zip:
		return "", &model.UnsupportedInputError{Path: path, Reason: "Landsat products are not distributed as ZIP archives"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(data)
	if !strings.Contains(text, "LANDSAT") {
		return "", &model.UnsupportedInputError{Path: path, Reason: "not a Landsat MTL document"}
	}
	return text, nil
}

// FindParseMetadata locates and parses the MTL document of a product
func FindParseMetadata(path string) (*Metadata, error) {
	text, err := FindMetafile(path)
	if err != nil {
		return nil, err
	}
	return ParseMetadataString(text)
}
