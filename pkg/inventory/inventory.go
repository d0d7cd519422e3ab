// Package inventory exports the devices in a layout as a flat table.
//
// Rows are ordered top of the rack first, the way racks are usually
// audited, and written as CSV or as an Excel workbook.
package inventory

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// Header lists the column titles in output order.
var Header = []string{"Units", "Bottom", "Top", "Face", "Name", "Type", "Manufacturer", "Model", "Height", "Full Depth", "ID"}

// Row is one placed device.
type Row struct {
	Units        string // Displayed unit range, e.g. "U5-U6"
	Bottom       int    // Physical bottom slot
	Top          int    // Physical top slot
	Face         rack.Face
	Name         string
	DeviceType   string
	Manufacturer string
	Model        string
	Height       float64
	FullDepth    bool
	ID           string
}

// Rows builds the table for l. Devices whose type is missing from the
// catalog are listed with an assumed height of one slot.
func Rows(l *layout.Layout) []Row {
	r := l.Rack()
	rows := make([]Row, 0, len(r.Devices))
	for _, d := range r.Devices {
		t, ok := l.Catalog().DeviceType(d.DeviceType)
		if !ok {
			t = rack.DeviceType{Slug: d.DeviceType, Height: 1}
		}
		span := rack.RangeOf(d.Position, t.Height)
		rows = append(rows, Row{
			Units:        unitRange(r, span),
			Bottom:       span.Bottom,
			Top:          span.Top,
			Face:         d.Face,
			Name:         d.Label(),
			DeviceType:   d.DeviceType,
			Manufacturer: t.Manufacturer,
			Model:        t.Model,
			Height:       t.Height,
			FullDepth:    t.FullDepth(),
			ID:           d.ID,
		})
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		if c := cmp.Compare(b.Top, a.Top); c != 0 {
			return c
		}
		return cmp.Compare(a.Face, b.Face)
	})
	return rows
}

func unitRange(r *rack.Rack, span rack.URange) string {
	lo, hi := r.UnitLabel(span.Bottom), r.UnitLabel(span.Top)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return fmt.Sprintf("U%d", lo)
	}
	return fmt.Sprintf("U%d-U%d", lo, hi)
}

func (row Row) record() []string {
	return []string{
		row.Units,
		strconv.Itoa(row.Bottom),
		strconv.Itoa(row.Top),
		string(row.Face),
		row.Name,
		row.DeviceType,
		row.Manufacturer,
		row.Model,
		strconv.FormatFloat(row.Height, 'f', -1, 64),
		strconv.FormatBool(row.FullDepth),
		row.ID,
	}
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.record()); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes rows to a single-sheet workbook named sheet.
func WriteXLSX(w io.Writer, rows []Row, sheet string) error {
	if sheet == "" {
		sheet = "Devices"
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			row.Units, row.Bottom, row.Top, string(row.Face), row.Name, row.DeviceType,
			row.Manufacturer, row.Model, row.Height, row.FullDepth, row.ID,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}
	if err := f.SetColWidth(sheet, "E", "H", 22); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Export writes the inventory of l to path as .csv or .xlsx.
func Export(l *layout.Layout, path string) error {
	rows := Rows(l)
	var write func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = func(w io.Writer) error { return WriteCSV(w, rows) }
	case ".xlsx":
		write = func(w io.Writer) error { return WriteXLSX(w, rows, l.Rack().Name) }
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported inventory file %q (want .csv or .xlsx)", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
