package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/isoforge/internal/model"
)

// ProjectCode holds the data encoded into the project QR code.
type ProjectCode struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Objects   int    `json:"objects"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewProjectCode summarizes p for its QR code.
func NewProjectCode(p model.Project) ProjectCode {
	return ProjectCode{ID: p.ID, Name: p.Name, Objects: len(p.Objects), UpdatedAt: p.UpdatedAt}
}

// QRCodePNG encodes info as JSON inside a PNG QR code of size pixels.
func QRCodePNG(info ProjectCode, size int) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project code: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// drawQRCode places the project's QR code at (x, y) with side length size mm.
func drawQRCode(pdf *fpdf.Fpdf, info ProjectCode, x, y, size float64) error {
	qrPNG, err := QRCodePNG(info, 256)
	if err != nil {
		return err
	}
	imgName := "qr_" + info.ID
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, x, y, size, size, false, opts, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, size, size, "D")
	return nil
}
