package model

import (
	"fmt"
	"strings"
)

// AmbiguousFieldError reports a document query that expected exactly one match
type AmbiguousFieldError struct {
	Tag   string
	Found int
}

func (e *AmbiguousFieldError) Error() string {
	return fmt.Sprintf("expected to find a single instance of tag '%s', found %d", e.Tag, e.Found)
}

// IndexError reports a positional lookup beyond the available matches
type IndexError struct {
	Tag   string
	Index int
	Found int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("instance %d of tag '%s' requested, found %d", e.Index, e.Tag, e.Found)
}

// MissingFieldError reports a required raw field that was never captured
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field '%s' is missing", e.Field)
}

// CoercionError reports a captured value that could not be converted to its declared type
type CoercionError struct {
	Field string
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert value %q of '%s': %v", e.Value, e.Field, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// BandCountError reports a calibration table with the wrong number of bands
type BandCountError struct {
	Group     string
	Operation string
	Expected  int
	Found     int
}

func (e *BandCountError) Error() string {
	return fmt.Sprintf("expecting values for all %d bands in %s_%s, found %d",
		e.Expected, e.Group, e.Operation, e.Found)
}

// FormatError reports an identifier whose format is not recognized
type FormatError struct {
	Field string
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unable to get %s from '%s'", e.Field, e.Value)
}

// MissingFileError reports that discovery found zero or several candidates where exactly one was
// required
type MissingFileError struct {
	Path    string
	Pattern string
	Found   []string
}

func (e *MissingFileError) Error() string {
	if len(e.Found) == 0 {
		return fmt.Sprintf("no metadata file matching '%s' found in '%s'", e.Pattern, e.Path)
	}
	return fmt.Sprintf("expecting exactly one metadata file matching '%s' in '%s', found %d: %s",
		e.Pattern, e.Path, len(e.Found), strings.Join(e.Found, ", "))
}

// MalformedArchiveError reports an archive container that cannot be opened
type MalformedArchiveError struct {
	Path string
	Err  error
}

func (e *MalformedArchiveError) Error() string {
	return fmt.Sprintf("unable to read archive '%s': %v", e.Path, e.Err)
}

func (e *MalformedArchiveError) Unwrap() error {
	return e.Err
}

// UnsupportedInputError reports an input path whose type cannot be handled
type UnsupportedInputError struct {
	Path   string
	Reason string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input '%s': %s", e.Path, e.Reason)
}

// GranuleError reports a granule count that does not fit the requested merge mode
type GranuleError struct {
	Path   string
	Tiles  []string
	Reason string
}

func (e *GranuleError) Error() string {
	return fmt.Sprintf("%s in '%s' (tiles: %s)", e.Reason, e.Path, strings.Join(e.Tiles, ", "))
}
