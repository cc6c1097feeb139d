package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct {
	sheet string
}

// NewXLSXExporter constructs an XLSX exporter writing to sheet (default "Transcript").
func NewXLSXExporter(sheet string) *XLSXExporter {
	if sheet == "" {
		sheet = "Transcript"
	}
	return &XLSXExporter{sheet: sheet}
}

// ContentType implements Renderer.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension implements Renderer.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes the title and notes above a bold header row followed by the data rows. Cells that
// parse as numbers are stored as numbers.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	row := 1
	if data.Title != "" {
		if err := f.SetCellValue(e.sheet, cell(1, row), data.Title); err != nil {
			return nil, err
		}
		row++
	}
	for _, note := range data.Notes {
		if err := f.SetCellValue(e.sheet, cell(1, row), note); err != nil {
			return nil, err
		}
		row++
	}
	if row > 1 {
		row++
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for i, header := range data.Headers {
		if err := f.SetCellValue(e.sheet, cell(i+1, row), header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(e.sheet, cell(1, row), cell(len(data.Headers), row), bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for _, record := range data.Rows {
		row++
		for i, value := range record {
			var v interface{} = value
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				v = n
			}
			if err := f.SetCellValue(e.sheet, cell(i+1, row), v); err != nil {
				return nil, err
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
