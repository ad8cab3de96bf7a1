package sentinel1

import (
	"fmt"
	"os"
	"time"

	"github.com/venicegeo/bf-satmeta/archive"
	"github.com/venicegeo/bf-satmeta/util"
)

// Input search patterns per container type
var searchPatterns = map[string]string{
	"SAFE": "S1?_*.SAFE",
	"zip":  "S1?_*.zip",
}

// FindInputFiles lists the Sentinel-1 products of a directory. Empty zip files and empty
// .SAFE folders are skipped.
func FindInputFiles(dir string) ([]string, error) {
	var infiles []string
	for _, container := range []string{"zip", "SAFE"} {
		found, err := archive.Glob(dir, searchPatterns[container])
		if err != nil {
			return nil, err
		}
		util.LogDebug(nil, fmt.Sprintf("Found %d files of format %s", len(found), container))
		for _, infile := range found {
			if !isEmpty(infile) {
				infiles = append(infiles, infile)
			}
		}
	}
	return infiles, nil
}

func isEmpty(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return true
	}
	if !info.IsDir() {
		return info.Size() == 0
	}
	entries, err := os.ReadDir(p)
	return err != nil || len(entries) == 0
}

// FilterByDate keeps the products whose file name date is within [start, end].
// A zero bound is open. Names without a date are dropped.
func FilterByDate(infiles []string, start, end time.Time) []string {
	var filtered []string
	for _, infile := range infiles {
		date, err := ProductDate(infile)
		if err != nil {
			util.LogAlert(nil, "Skipping "+infile+": "+err.Error())
			continue
		}
		if !start.IsZero() && date.Before(start) {
			continue
		}
		if !end.IsZero() && date.After(end) {
			continue
		}
		filtered = append(filtered, infile)
	}
	return filtered
}
