package main

import (
	"fmt"
	"time"

	"github.com/venicegeo/bf-satmeta/sentinel1"
	cli "gopkg.in/urfave/cli.v1"
)

var searchFlags = []cli.Flag{
	cli.StringFlag{Name: "from", Usage: "Earliest acquisition date (YYYY-MM-DD)"},
	cli.StringFlag{Name: "to", Usage: "Latest acquisition date (YYYY-MM-DD)"},
}

func parseDateFlag(c *cli.Context, name string) (time.Time, error) {
	value := c.String(name)
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return date, nil
}

func searchS1Action(c *cli.Context) error {
	dir := c.Args().First()
	if dir == "" {
		return fmt.Errorf("s1-search needs a directory")
	}
	from, err := parseDateFlag(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateFlag(c, "to")
	if err != nil {
		return err
	}
	if !to.IsZero() {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	infiles, err := sentinel1.FindInputFiles(dir)
	if err != nil {
		return err
	}
	if !from.IsZero() || !to.IsZero() {
		infiles = sentinel1.FilterByDate(infiles, from, to)
	}
	for _, infile := range infiles {
		fmt.Fprintln(c.App.Writer, infile)
	}
	return nil
}
