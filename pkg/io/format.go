package io

import (
	"path/filepath"
	"strings"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported layout file %q (want .json, .yaml or .yml)", path)
	}
}
