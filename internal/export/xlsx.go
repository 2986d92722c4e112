package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/isoforge/internal/model"
)

// Sheet names written by ExportXLSX.
const (
	ObjectsSheet = "Objects"
	SummarySheet = "Summary"
)

// ObjectHeaders is the header row of the Objects sheet. The importer
// recognizes every column.
var ObjectHeaders = []interface{}{"ID", "Type", "X", "Y", "Z", "Width", "Height", "Depth", "Color"}

// ExportXLSX writes an object schedule and a per-color summary.
func ExportXLSX(path string, p model.Project) error {
	if len(p.Objects) == 0 {
		return ErrEmptyScene
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ObjectsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(ObjectsSheet, "A1", &ObjectHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(ObjectsSheet, "A1", "I1", bold); err != nil {
		return err
	}
	for i, o := range p.Objects {
		row := []interface{}{
			o.ID, string(o.Type),
			o.Position.X, o.Position.Y, o.Position.Z,
			o.Size.Width, o.Size.Height, o.Size.Depth,
			o.Color,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(ObjectsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write object %s: %w", o.ID, err)
		}
	}

	summaryHeader := []interface{}{"Color", "Count", "Volume"}
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "C1", bold); err != nil {
		return err
	}
	for i, s := range model.SummarizeByColor(p.Objects) {
		row := []interface{}{s.Color, s.Count, s.Volume}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
		if c, err := model.ParseHexColor(s.Color); err == nil {
			hex := strings.TrimPrefix(model.FormatHexColor(c), "#")
			style, err := f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
			})
			if err == nil {
				_ = f.SetCellStyle(SummarySheet, cell, cell, style)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}
