package sentinel1

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/venicegeo/bf-satmeta/model"
)

var (
	datetimePattern = regexp.MustCompile(`\d{8}t\d{6}`)
	datePattern     = regexp.MustCompile(`(\d{8})t\d{6}`)
)

const (
	datetimeLayout = "20060102t150405"
	dateLayout     = "20060102"
)

func baseName(name string) string {
	return filepath.Base(strings.TrimRight(name, `/\`))
}

// DatesFromFilename returns every timestamp embedded in a Sentinel-1 file name, in order.
// With zeroTime only the date part of each timestamp is kept.
func DatesFromFilename(name string, zeroTime bool) ([]time.Time, error) {
	lower := strings.ToLower(baseName(name))
	var raw []string
	layout := datetimeLayout
	if zeroTime {
		layout = dateLayout
		for _, m := range datePattern.FindAllStringSubmatch(lower, -1) {
			raw = append(raw, m[1])
		}
	} else {
		raw = datetimePattern.FindAllString(lower, -1)
	}
	if len(raw) == 0 {
		return nil, &model.FormatError{Field: "dates of format '" + layout + "'", Value: name}
	}

	dates := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.Parse(layout, s)
		if err != nil {
			return nil, &model.CoercionError{Field: "file name date", Value: s, Err: err}
		}
		dates[i] = t
	}
	return dates, nil
}

// ProductDate is the date of the first timestamp in the file name
func ProductDate(name string) (time.Time, error) {
	dates, err := DatesFromFilename(name, true)
	if err != nil {
		return time.Time{}, err
	}
	return dates[0], nil
}
