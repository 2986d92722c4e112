// Package export writes scenes to files: project JSON, SVG, raster images,
// a PDF sheet with a QR code, a DXF wireframe, and an XLSX schedule.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/isoforge/internal/model"
)

// ErrEmptyScene is returned by exporters that need at least one object.
var ErrEmptyScene = errors.New("scene has no objects")

// DefaultScale is the pixels-per-projection-unit used for raster output.
const DefaultScale = 1.0

// Padding around exported drawings, in projection units.
const Padding = 20.0

// Format identifies an export file type by its extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
	FormatDXF  Format = "dxf"
	FormatXLSX Format = "xlsx"
)

// Formats lists every supported export format.
var Formats = []Format{FormatJSON, FormatSVG, FormatPNG, FormatBMP, FormatTIFF, FormatPDF, FormatDXF, FormatXLSX}

// FormatForPath returns the format implied by path's extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "tif" {
		ext = "tiff"
	}
	for _, f := range Formats {
		if string(f) == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported export format %q", ext)
}

// DefaultFileName returns the suggested name for an export made at now.
func DefaultFileName(f Format, now time.Time) string {
	return fmt.Sprintf("isometric-project-%d.%s", now.UnixMilli(), f)
}

// ExportFile writes p to path in the format implied by the extension.
func ExportFile(path string, p model.Project) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	switch f {
	case FormatJSON:
		return ExportJSON(path, p)
	case FormatSVG:
		return ExportSVG(path, p.Objects)
	case FormatPNG, FormatBMP, FormatTIFF:
		return ExportImage(path, p.Objects, DefaultScale)
	case FormatPDF:
		return ExportPDF(path, p)
	case FormatDXF:
		return ExportDXF(path, p.Objects)
	case FormatXLSX:
		return ExportXLSX(path, p)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// ExportJSON writes the full project record, indented.
func ExportJSON(path string, p model.Project) error {
	if p.Objects == nil {
		p.Objects = []model.SceneObject{}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}
