// core/rack/decode.go

// Package rack decodes Ableton Live rack presets (.adg/.adv) into a
// structured tree of chains, devices, and macro controls. The input
// is the parsed XML element tree of the decompressed container; the
// decoder itself performs no I/O and keeps no state between calls,
// so batch drivers can run one decode per file concurrently without
// locking.
package rack

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// DocumentRoot is the required tag of every Live preset document.
const DocumentRoot = "Ableton"

// ErrNoRack is returned when the document contains no rack container
// element at all.
var ErrNoRack = errors.New("rack: no rack device element in document")

// Decoder decodes preset documents against one device vocabulary.
type Decoder struct {
	reg *Registry
}

// New returns a decoder using the given registry, or the built-in
// vocabulary when reg is nil.
func New(reg *Registry) *Decoder {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Decoder{reg: reg}
}

// Decode builds the analysis tree for one preset document. source is
// the originating file name; only its base name (extension stripped)
// is used, as the use-case label. Structural problems fail the whole
// decode; data-level problems are collected on Analysis.Warnings.
func (d *Decoder) Decode(root *etree.Element, source string) (*Analysis, error) {
	if root == nil {
		return nil, errors.New("rack: nil document root")
	}
	if root.Tag != DocumentRoot {
		return nil, fmt.Errorf("rack: missing <%s> document root, got <%s>", DocumentRoot, root.Tag)
	}

	rackEl := findTopRack(root)
	if rackEl == nil {
		return nil, ErrNoRack
	}

	macros, warns := extractMacros(root)

	rackName := childValue(rackEl, "UserName")
	if rackName == "" {
		rackName = "Unknown"
	}

	return &Analysis{
		RackName: rackName,
		UseCase:  UseCase(source),
		Macros:   macros,
		Chains:   d.enumerateChains(rackEl, ClassifyRack(rackEl)),
		Warnings: warns,
	}, nil
}

// Decode decodes with the built-in vocabulary.
func Decode(root *etree.Element, source string) (*Analysis, error) {
	return New(nil).Decode(root, source)
}

// findTopRack locates the outermost rack container in document order.
func findTopRack(root *etree.Element) *etree.Element {
	for _, c := range root.ChildElements() {
		if ClassifyRack(c) != NotARack {
			return c
		}
		if m := findTopRack(c); m != nil {
			return m
		}
	}
	return nil
}

// UseCase derives the use-case label from a preset path: base name,
// directory and extension stripped. An empty source yields "Unknown".
func UseCase(source string) string {
	if source == "" {
		return "Unknown"
	}
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
