package satmeta

import (
	"context"

	"github.com/venicegeo/bf-satmeta/landsat"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/pleiades"
	"github.com/venicegeo/bf-satmeta/sentinel1"
	"github.com/venicegeo/bf-satmeta/sentinel2"
)

// Options carries the adapter switches that apply to a single format
type Options struct {
	// Annotations reads the Sentinel-1 per-polarization annotation files
	Annotations bool
	// FlattenSingleGranule merges a lone Sentinel-2 granule into the product record
	FlattenSingleGranule bool
	// CheckGranules makes a Sentinel-2 product without granules an error
	CheckGranules bool
	// TileName restricts Sentinel-2 granule discovery to one tile
	TileName string
}

// Parse locates and parses the metadata of the product at path
func Parse(ctx context.Context, format Format, path string) (model.Record, error) {
	return ParseWithOptions(ctx, format, path, Options{})
}

// ParseWithOptions is Parse with adapter switches. Format Unknown is detected from path.
func ParseWithOptions(ctx context.Context, format Format, path string, opts Options) (model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if format == Unknown {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	switch format {
	case Landsat8:
		m, err := landsat.FindParseMetadata(path)
		if err != nil {
			return nil, err
		}
		return m, nil
	case Sentinel1:
		m, err := sentinel1.FindParseMetadata(path, sentinel1.Options{Annotations: opts.Annotations})
		if err != nil {
			return nil, err
		}
		return m, nil
	case Sentinel2:
		m, err := sentinel2.FindParseMetadata(path, sentinel2.Options{
			CheckGranules:        opts.CheckGranules,
			FlattenSingleGranule: opts.FlattenSingleGranule,
			TileName:             opts.TileName,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	case Pleiades, PleiadesNeo:
		variant := pleiades.Pleiades
		if format == PleiadesNeo {
			variant = pleiades.Neo
		}
		m, err := pleiades.FindParseMetadata(path, variant)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, &model.UnsupportedInputError{Path: path, Reason: "unsupported format " + format.String()}
}
