// Package xmldoc provides validated single and multi value lookups over namespace-prefixed XML
// metadata documents.
//
// Tags are XPath steps evaluated as descendant searches from the current node, so "TILE_ID",
// "safe:relativeOrbitNumber[@type='start']" and "Mean_Sun_Angle/ZENITH_ANGLE" are all valid.
// Prefixes are matched as written in the document.
package xmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"
	"github.com/venicegeo/bf-satmeta/model"
	"golang.org/x/text/encoding/charmap"
)

// Document is a parsed XML document, or an element of one used as a lookup scope
type Document struct {
	node *xmlquery.Node
}

// Parse parses an XML document
func Parse(data []byte) (*Document, error) {
	return ParseReader(bytes.NewReader(data))
}

// ParseReader parses an XML document from r
func ParseReader(r io.Reader) (*Document, error) {
	node, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML document: %w", err)
	}
	return &Document{node: node}, nil
}

var encodingDecl = regexp.MustCompile(`(<\?xml[^>]*encoding=)["'][^"']*["']`)

// ParseLatin1 parses a document stored as ISO-8859-1. The text is re-encoded as UTF-8 and the
// declared encoding rewritten to match.
func ParseLatin1(data []byte) (*Document, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding Latin-1 document: %w", err)
	}
	return parseUTF8(decoded)
}

// ParseString parses a document held as text. Text that is not valid UTF-8 is taken as
// Latin-1.
func ParseString(text string) (*Document, error) {
	if !utf8.ValidString(text) {
		return ParseLatin1([]byte(text))
	}
	return parseUTF8([]byte(text))
}

func parseUTF8(data []byte) (*Document, error) {
	return Parse(encodingDecl.ReplaceAll(data, []byte(`${1}"UTF-8"`)))
}

// ParseFile reads and parses a Latin-1 document from disk
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLatin1(data)
}

// Text returns the trimmed text content of the scope element
func (d *Document) Text() string {
	return strings.TrimSpace(d.node.InnerText())
}

// Name returns the prefixed name of the scope element
func (d *Document) Name() string {
	if d.node.Prefix != "" {
		return d.node.Prefix + ":" + d.node.Data
	}
	return d.node.Data
}

// Attr returns an attribute of the scope element
func (d *Document) Attr(name string) (string, bool) {
	for _, attr := range d.node.Attr {
		qualified := attr.Name.Local
		if attr.Name.Space != "" {
			qualified = attr.Name.Space + ":" + attr.Name.Local
		}
		if attr.Name.Local == name || qualified == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Select returns every element matching tag, in document order, as lookup scopes
func (d *Document) Select(tag string) ([]*Document, error) {
	nodes, err := d.query(tag)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, len(nodes))
	for i, node := range nodes {
		docs[i] = &Document{node: node}
	}
	return docs, nil
}

func (d *Document) query(tag string) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(d.node, ".//"+tag)
	if err != nil {
		return nil, fmt.Errorf("invalid tag expression '%s': %w", tag, err)
	}
	return nodes, nil
}

func value(node *xmlquery.Node, tag, attr string) (string, error) {
	if attr == "" {
		return strings.TrimSpace(node.InnerText()), nil
	}
	if v, ok := (&Document{node: node}).Attr(attr); ok {
		return v, nil
	}
	return "", &model.MissingFieldError{Field: tag + "@" + attr}
}
