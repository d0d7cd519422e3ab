// Package io reads and writes layout documents.
//
// # Overview
//
// A layout is stored as a single [layout.Document] holding the rack, its
// placed devices and the device-type catalog they reference. This package
// encodes documents as JSON or YAML; the format is picked from the file
// extension (.json, .yaml or .yml).
//
// # Format
//
//	{
//	  "version": "1",
//	  "name": "lab",
//	  "rack": {
//	    "id": "6f1c…",
//	    "name": "Rack",
//	    "height": 42,
//	    "width": 19,
//	    "starting_unit": 1,
//	    "devices": [
//	      {"id": "9a2e…", "device_type": "dell-r650", "name": "db01", "position": 10, "face": "front"}
//	    ]
//	  },
//	  "device_types": [
//	    {"slug": "dell-r650", "u_height": 1, "manufacturer": "Dell", "model": "PowerEdge R650"}
//	  ]
//	}
//
// Positions are physical bottom slots counted from 1 at the bottom of the
// rack, independent of how the rack labels its units. is_full_depth may be
// omitted and then defaults to true.
//
// # Import
//
// Use [Import] to read a document from a file path, or [Read] to decode one
// from any io.Reader. [Load] additionally rebuilds a [layout.Layout].
//
//	l, err := io.Load("lab.yaml")
//
// Decoding errors carry the INVALID_FORMAT code and a missing file carries
// FILE_NOT_FOUND, so callers can use errors.GetCode.
//
// # Export
//
// Use [Export] to write a document to a file, or [Write] to encode it to any
// io.Writer. [Save] writes a layout's current state. Files are written to a
// temporary sibling and renamed into place.
package io
