// core/adg/parse.go
package adg

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// ErrEmptyDocument is returned when the container decompresses to an
// XML stream with no root element.
var ErrEmptyDocument = errors.New("adg: empty document")

// Parse reads one XML document and returns its root element.
func Parse(r io.Reader) (*etree.Element, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("adg: parse: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// ParseFile decompresses and parses a rack preset in one step.
func ParseFile(path string) (*etree.Element, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Parse(rc)
}
