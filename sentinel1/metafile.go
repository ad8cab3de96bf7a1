package sentinel1

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-satmeta/archive"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/xmldoc"
)

const manifestName = "manifest.safe"

// Polarisations with an annotation document
var Polarisations = []string{"VH", "VV"}

// Options controls what FindParseMetadata reads besides the manifest
type Options struct {
	Annotations bool
}

// annotationFile matches annotation documents by polarisation and swath; calibration and noise
// documents live one level deeper and never match
func annotationFile(polarisation string) string {
	return "s1?-*-" + strings.ToLower(polarisation) + "-*-???.xml"
}

func annotationPattern(polarisation string) string {
	return "*/annotation/" + annotationFile(polarisation)
}

func checkSuffix(p string) error {
	if strings.HasSuffix(strings.TrimRight(p, `/\`), ".SAFE") || strings.HasSuffix(p, ".zip") {
		return nil
	}
	return &model.UnsupportedInputError{Path: p, Reason: "input file/folder must end in .zip or .SAFE"}
}

func isZip(p string) bool {
	return strings.HasSuffix(p, ".zip")
}

// ReadManifest returns the manifest of a .SAFE folder or of a zipped SAFE product
func ReadManifest(p string) ([]byte, error) {
	if err := checkSuffix(p); err != nil {
		return nil, err
	}
	if !isZip(p) {
		manifest := filepath.Join(p, manifestName)
		data, err := os.ReadFile(manifest)
		if os.IsNotExist(err) {
			return nil, &model.MissingFileError{Path: p, Pattern: manifestName}
		}
		return data, err
	}

	z, err := archive.OpenZip(p)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	names := z.Names()
	if len(names) == 0 {
		return nil, &model.MissingFileError{Path: p, Pattern: manifestName}
	}
	return z.Read(path.Join(names[0], manifestName))
}

// ReadAnnotations returns the annotation document of each polarisation, keyed by polarisation.
// Exactly one document must match per polarisation.
func ReadAnnotations(p string) (map[string][]byte, error) {
	if err := checkSuffix(p); err != nil {
		return nil, err
	}
	data := map[string][]byte{}

	if !isZip(p) {
		for _, polarisation := range Polarisations {
			pattern := path.Join("annotation", annotationFile(polarisation))
			matches, err := archive.Glob(p, pattern)
			if err != nil {
				return nil, err
			}
			file, err := archive.ExactlyOne(p, pattern, matches)
			if err != nil {
				return nil, err
			}
			if data[polarisation], err = os.ReadFile(file); err != nil {
				return nil, err
			}
		}
		return data, nil
	}

	z, err := archive.OpenZip(p)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	names := z.Names()
	for _, polarisation := range Polarisations {
		pattern := annotationPattern(polarisation)
		member, err := archive.ExactlyOne(p, pattern, archive.MatchNames(names, pattern))
		if err != nil {
			return nil, err
		}
		if data[polarisation], err = z.Read(member); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// FindParseMetadata finds and parses the manifest of a .SAFE folder or .zip product, and the
// annotation documents when requested
func FindParseMetadata(p string, opts Options) (*Metadata, error) {
	manifest, err := ReadManifest(p)
	if err != nil {
		return nil, err
	}
	m, err := ParseMetadataBytes(manifest)
	if err != nil {
		return nil, err
	}
	if !opts.Annotations {
		return m, nil
	}

	documents, err := ReadAnnotations(p)
	if err != nil {
		return nil, err
	}
	m.Annotations = map[string]*Annotation{}
	for polarisation, data := range documents {
		doc, err := xmldoc.Parse(data)
		if err != nil {
			return nil, err
		}
		if m.Annotations[polarisation], err = ParseAnnotation(doc); err != nil {
			return nil, err
		}
	}
	return m, nil
}
