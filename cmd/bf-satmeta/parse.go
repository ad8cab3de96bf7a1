package main

import (
	"context"
	"fmt"

	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/util"
	"github.com/venicegeo/geojson-go/geojson"
	cli "gopkg.in/urfave/cli.v1"
)

var parseFlags = []cli.Flag{
	cli.StringFlag{Name: "format, f", Usage: "Product format (landsat8, sentinel1, sentinel2, pleiades, pleiades_neo); detected from the name when omitted"},
	cli.BoolFlag{Name: "annotations", Usage: "Read the Sentinel-1 annotation files"},
	cli.BoolFlag{Name: "flatten", Usage: "Merge a single Sentinel-2 granule into the product record"},
	cli.BoolFlag{Name: "check-granules", Usage: "Fail on Sentinel-2 products without granules"},
	cli.StringFlag{Name: "tile", Usage: "Only read the Sentinel-2 granule of this tile, e.g. 32UPF"},
}

// locatedRecord is a parsed record together with where it was read from
type locatedRecord struct {
	record model.Record
	path   string
	format satmeta.Format
}

func (lr locatedRecord) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(lr.record, model.SourceLocation{Path: lr.path, Format: lr.format.String()})
}

func parseAction(c *cli.Context) error {
	paths := []string(c.Args())
	if len(paths) == 0 {
		return fmt.Errorf("parse needs at least one product path")
	}

	format := satmeta.Unknown
	if name := c.String("format"); name != "" {
		var err error
		if format, err = satmeta.ParseFormat(name); err != nil {
			return err
		}
	}
	opts := satmeta.Options{
		Annotations:          c.Bool("annotations"),
		FlattenSingleGranule: c.Bool("flatten"),
		CheckGranules:        c.Bool("check-granules"),
		TileName:             c.String("tile"),
	}
	runner, err := satmeta.NewRunnerFromEnv(opts, nil)
	if err != nil {
		return err
	}

	jobs := make([]satmeta.Job, len(paths))
	for i, p := range paths {
		jobs[i] = satmeta.Job{Path: p, Format: format}
	}

	var failed int
	multiResult := model.MultiResult{}
	for _, result := range runner.Run(context.Background(), jobs) {
		if result.Err != nil {
			failed++
			continue
		}
		multiResult.FeatureCreators = append(multiResult.FeatureCreators, locatedRecord{result.Record, result.Path, result.Format})
	}

	if len(paths) == 1 && failed == 0 {
		feature, err := multiResult.FeatureCreators[0].GeoJSONFeature()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, feature.String())
		return nil
	}

	if len(multiResult.FeatureCreators) > 0 {
		collection, err := multiResult.GeoJSONFeatureCollection()
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, collection.String())
	}
	if failed > 0 {
		util.LogAlert(&util.BasicLogContext{}, fmt.Sprintf("%d of %d products failed to parse", failed, len(paths)))
		return fmt.Errorf("%d of %d products failed to parse", failed, len(paths))
	}
	return nil
}
