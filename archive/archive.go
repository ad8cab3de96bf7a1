// Package archive locates and reads metadata documents inside product folders, ZIP archives and
// (optionally gzipped) TAR archives.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/venicegeo/bf-satmeta/model"
)

// Kind is the container type of a product path
type Kind int

// Container kinds
const (
	Plain Kind = iota
	Directory
	Zip
	Tar
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case Zip:
		return "zip"
	case Tar:
		return "tar"
	default:
		return "plain"
	}
}

var tarSuffixes = []string{".tar", ".gz", ".tgz"}

// KindOf classifies a product path by stat and file suffix
func KindOf(p string) (Kind, error) {
	info, err := os.Stat(p)
	if err != nil {
		return Plain, err
	}
	if info.IsDir() {
		return Directory, nil
	}
	ext := strings.ToLower(filepath.Ext(p))
	if ext == ".zip" {
		return Zip, nil
	}
	for _, suffix := range tarSuffixes {
		if ext == suffix {
			return Tar, nil
		}
	}
	return Plain, nil
}

// ZipArchive is an open ZIP product
type ZipArchive struct {
	path   string
	reader *zip.ReadCloser
}

// OpenZip opens a ZIP archive. A corrupt container is a *model.MalformedArchiveError.
func OpenZip(p string) (*ZipArchive, error) {
	if _, err := os.Stat(p); err != nil {
		return nil, err
	}
	reader, err := zip.OpenReader(p)
	if err != nil {
		return nil, &model.MalformedArchiveError{Path: p, Err: err}
	}
	return &ZipArchive{path: p, reader: reader}, nil
}

// Names lists member names in archive order
func (z *ZipArchive) Names() []string {
	names := make([]string, len(z.reader.File))
	for i, f := range z.reader.File {
		names[i] = f.Name
	}
	return names
}

// Read returns the content of one member
func (z *ZipArchive) Read(name string) ([]byte, error) {
	for _, f := range z.reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &model.MalformedArchiveError{Path: z.path, Err: err}
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, &model.MalformedArchiveError{Path: z.path, Err: err}
		}
		return data, nil
	}
	return nil, &model.MissingFileError{Path: z.path, Pattern: name}
}

// Close releases the archive
func (z *ZipArchive) Close() error {
	return z.reader.Close()
}

// ReadZipMember opens a ZIP archive, reads one member and closes it again
func ReadZipMember(p string, name string) ([]byte, error) {
	z, err := OpenZip(p)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	return z.Read(name)
}

// ScanTar streams a TAR archive, gzip-compressed or not, and returns every member name together
// with the contents of the members accepted by match
func ScanTar(p string, match func(name string) bool) ([]string, map[string][]byte, error) {
	file, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	var stream io.Reader = buffered
	if magic, err := buffered.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			return nil, nil, &model.MalformedArchiveError{Path: p, Err: err}
		}
		defer gz.Close()
		stream = gz
	}

	var names []string
	contents := map[string][]byte{}
	reader := tar.NewReader(stream)
	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, &model.MalformedArchiveError{Path: p, Err: err}
		}
		names = append(names, header.Name)
		if header.Typeflag != tar.TypeReg || !match(header.Name) {
			continue
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, nil, &model.MalformedArchiveError{Path: p, Err: err}
		}
		contents[header.Name] = data
	}
	return names, contents, nil
}

// Glob returns the sorted matches of pattern below dir
func Glob(dir string, pattern ...string) ([]string, error) {
	full := filepath.Join(append([]string{dir}, pattern...)...)
	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern '%s': %w", full, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// MatchNames filters archive member names with a shell pattern; '*' does not cross '/'
func MatchNames(names []string, pattern string) []string {
	var found []string
	for _, name := range names {
		if ok, _ := path.Match(pattern, name); ok {
			found = append(found, name)
		}
	}
	return found
}

// ExactlyOne returns the single candidate, or a *model.MissingFileError naming what was found
func ExactlyOne(where, pattern string, candidates []string) (string, error) {
	if len(candidates) != 1 {
		return "", &model.MissingFileError{Path: where, Pattern: pattern, Found: candidates}
	}
	return candidates[0], nil
}
