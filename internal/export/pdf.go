package export

import (
	"bytes"
	"fmt"
	"image/png"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/isoforge/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	sidebarWidth = 80.0
	qrSize       = 35.0
	renderScale  = 3.0
)

// ExportPDF writes a one-page sheet for p: the rendered scene, a QR code
// identifying the project, and a per-color summary table.
func ExportPDF(path string, p model.Project) error {
	if len(p.Objects) == 0 {
		return ErrEmptyScene
	}

	img, err := RenderImage(p.Objects, renderScale)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode scene image: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	renderHeader(pdf, p)

	// Scene image, fitted into the area left of the sidebar.
	areaW := pageWidth - marginLeft - marginRight - sidebarWidth - 5
	areaH := pageHeight - drawAreaTop - marginBottom - 8
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	scale := areaW / iw
	if s := areaH / ih; s < scale {
		scale = s
	}
	w, h := iw*scale, ih*scale
	x := marginLeft + (areaW-w)/2
	y := drawAreaTop + (areaH-h)/2

	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(marginLeft, drawAreaTop, areaW, areaH, "F")
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("scene", opts, &buf)
	pdf.ImageOptions("scene", x, y, w, h, false, opts, 0, "")

	sideX := pageWidth - marginRight - sidebarWidth
	if err := drawQRCode(pdf, NewProjectCode(p), sideX+(sidebarWidth-qrSize)/2, drawAreaTop, qrSize); err != nil {
		return err
	}
	renderColorTable(pdf, model.SummarizeByColor(p.Objects), sideX, drawAreaTop+qrSize+6)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by IsoForge - Isometric Scene Editor", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// renderHeader draws the title and stats line.
func renderHeader(pdf *fpdf.Fpdf, p model.Project) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, p.Name, "", 0, "L", false, 0, "")

	var volume float64
	for _, o := range p.Objects {
		volume += o.Size.Volume()
	}
	updated := time.UnixMilli(p.UpdatedAt).UTC().Format("2006-01-02 15:04 MST")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Objects: %d | Volume: %.2f | Updated: %s", len(p.Objects), volume, updated)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, drawAreaTop-2, pageWidth-marginRight, drawAreaTop-2)
}

// renderColorTable draws one row per color: swatch, hex, count, volume.
func renderColorTable(pdf *fpdf.Fpdf, rows []model.ColorSummary, x, y float64) {
	colWidths := []float64{10, 30, 18, 22}
	headers := []string{"", "Color", "Count", "Volume"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	xPos := x
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	maxY := pageHeight - marginBottom - 10
	for i, row := range rows {
		if y+6 > maxY {
			pdf.SetXY(x, y)
			pdf.CellFormat(80, 5, fmt.Sprintf("... %d more", len(rows)-i), "", 0, "L", false, 0, "")
			return
		}
		c, err := model.ParseHexColor(row.Color)
		if err != nil {
			c = model.MissingColor
		}
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Rect(x, y, colWidths[0], 6, "FD")

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = x + colWidths[0]
		cells := []string{row.Color, fmt.Sprintf("%d", row.Count), fmt.Sprintf("%.2f", row.Volume)}
		for j, cell := range cells {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j+1], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j+1]
		}
		y += 6
	}
}
