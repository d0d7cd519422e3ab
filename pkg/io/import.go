package io

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
)

// Read decodes a document from r.
//
// Unknown fields are ignored. Read does not validate the document beyond
// decoding; [layout.FromDocument] does that. Read does not close r.
func Read(r io.Reader, format Format) (layout.Document, error) {
	var doc layout.Document
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&doc)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return doc, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return doc, nil
}

// Import reads the document at path, picking the format from its extension.
func Import(path string) (layout.Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return layout.Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return layout.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s does not exist", path)
		}
		return layout.Document{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	doc, err := Read(f, format)
	if err != nil {
		return doc, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return doc, nil
}

// Load imports the document at path and rebuilds a layout from it.
func Load(path string, opts ...layout.Option) (*layout.Layout, error) {
	doc, err := Import(path)
	if err != nil {
		return nil, err
	}
	return layout.FromDocument(doc, opts...)
}
