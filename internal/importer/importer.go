// Package importer loads scene data from outside the project store:
// validated project JSON files, CSV and Excel object schedules, and DXF
// drawings. Schedule import supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/isoforge/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Imports are
// atomic: when Errors is non-empty, Objects is nil.
type ImportResult struct {
	Objects  []model.SceneObject
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced objects without errors.
func (r ImportResult) OK() bool {
	return len(r.Errors) == 0 && len(r.Objects) > 0
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	ID     int
	Type   int
	X      int
	Y      int
	Z      int
	Width  int
	Height int
	Depth  int
	Color  int
}

// DefaultColor is used for schedule rows without a color column.
var DefaultColor = model.DefaultAppConfig().DefaultColor

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":     {"id", "object", "object id", "name", "label"},
	"type":   {"type", "kind", "shape"},
	"x":      {"x", "pos x", "position x", "col", "column"},
	"y":      {"y", "pos y", "position y", "row"},
	"z":      {"z", "pos z", "position z", "level", "elevation"},
	"width":  {"width", "w", "size x"},
	"height": {"height", "h", "size z"},
	"depth":  {"depth", "d", "size y"},
	"color":  {"color", "colour", "fill", "hex"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (x, y, z, width, height, depth, color) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{ID: -1, Type: -1, X: -1, Y: -1, Z: -1, Width: -1, Height: -1, Depth: -1, Color: -1}
	slots := map[string]*int{
		"id": &mapping.ID, "type": &mapping.Type,
		"x": &mapping.X, "y": &mapping.Y, "z": &mapping.Z,
		"width": &mapping.Width, "height": &mapping.Height, "depth": &mapping.Depth,
		"color": &mapping.Color,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{ID: -1, Type: -1, X: 0, Y: 1, Z: 2, Width: 3, Height: 4, Depth: 5, Color: 6}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNumber(row []string, idx int, name, rowLabel string, fallback float64) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return fallback, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a SceneObject from a row using the given column mapping.
// Returns the object, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.SceneObject, string, string) {
	var pos [3]float64
	for i, c := range []struct {
		idx  int
		name string
	}{{mapping.X, "x"}, {mapping.Y, "y"}, {mapping.Z, "z"}} {
		if getCell(row, c.idx) == "" {
			return model.SceneObject{}, fmt.Sprintf("%s: Missing %s value", rowLabel, c.name), ""
		}
		v, msg := parseNumber(row, c.idx, c.name, rowLabel, 0)
		if msg != "" {
			return model.SceneObject{}, msg, ""
		}
		pos[i] = v
	}

	var size [3]float64
	for i, c := range []struct {
		idx  int
		name string
	}{{mapping.Width, "width"}, {mapping.Height, "height"}, {mapping.Depth, "depth"}} {
		v, msg := parseNumber(row, c.idx, c.name, rowLabel, 1)
		if msg != "" {
			return model.SceneObject{}, msg, ""
		}
		if v <= 0 {
			return model.SceneObject{}, fmt.Sprintf("%s: Width, height, and depth must be positive", rowLabel), ""
		}
		size[i] = v
	}

	kind := model.ShapeCube
	if s := strings.ToLower(getCell(row, mapping.Type)); s != "" {
		kind = model.ShapeKind(s)
		if !kind.Valid() {
			return model.SceneObject{}, fmt.Sprintf("%s: Unsupported shape '%s'", rowLabel, s), ""
		}
	}

	var warning string
	color := getCell(row, mapping.Color)
	switch {
	case color == "":
		color = DefaultColor
	case !strings.HasPrefix(color, "#") && model.ValidHexColor("#"+color):
		color = "#" + color
	case !model.ValidHexColor(color):
		warning = fmt.Sprintf("%s: Unknown color '%s', defaulting to %s", rowLabel, color, DefaultColor)
		color = DefaultColor
	}

	obj := model.NewObject(kind, model.Vec3{X: pos[0], Y: pos[1], Z: pos[2]}, color)
	obj.Size = model.Size{Width: size[0], Height: size[1], Depth: size[2]}
	if id := getCell(row, mapping.ID); id != "" {
		obj.ID = id
	}
	return obj, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports objects from a CSV schedule.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports objects from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports objects from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Any row error discards every parsed object.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.X == -1 {
			missing = append(missing, "X")
		}
		if mapping.Y == -1 {
			missing = append(missing, "Y")
		}
		if mapping.Z == -1 {
			missing = append(missing, "Z")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.ParseFloat(getCell(rows[0], 0), 64); err != nil && !isEmptyRow(rows[0]) {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	seen := map[string]string{}
	var objects []model.SceneObject
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		obj, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if prev, dup := seen[obj.ID]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate id '%s' (first used on %s)", rowLabel, obj.ID, prev))
			continue
		}
		seen[obj.ID] = rowLabel
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		objects = append(objects, obj)
	}

	if len(result.Errors) > 0 {
		return result
	}
	if len(objects) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}
	result.Objects = objects
	return result
}
