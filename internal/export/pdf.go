package export

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tvworks/repairdesk/internal/domain"
)

// PhotoLoader resolves photo bytes for a PhotoRef id. Export stays
// decoupled from the blob backend.
type PhotoLoader func(id string) ([]byte, error)

const (
	photosPerRow = 3
	photoWidth   = 58.0
	photoHeight  = 44.0
	photoGap     = 5.0
	leftMargin   = 12.0
)

// WriteRecordPDF renders one record as a fixed-order field dump with up
// to three photos in a fixed-size grid below the text.
func WriteRecordPDF(w io.Writer, title string, row Row, photos []domain.PhotoRef, load PhotoLoader) error {
	pdf := newDoc()
	pdf.AddPage()
	renderSection(pdf, title, row, photos, load)
	return output(pdf, w)
}

// WriteCombinedPDF renders one intake section followed by one section
// per repair, each repair on its own page after the first.
func WriteCombinedPDF(w io.Writer, combined domain.CombinedRecord, load PhotoLoader) error {
	pdf := newDoc()
	pdf.AddPage()

	if combined.Intake != nil {
		renderSection(pdf, fmt.Sprintf("Intake %s", combined.Serial),
			FlattenIntake(*combined.Intake), combined.Intake.Photos, load)
	} else {
		renderLine(pdf, fmt.Sprintf("No intake on file for %s", combined.Serial))
	}

	for i, r := range combined.Repairs {
		pdf.AddPage()
		renderSection(pdf, fmt.Sprintf("Repair %d - %s", i+1, combined.Serial),
			FlattenRepair(r), r.Photos, load)
	}
	return output(pdf, w)
}

func newDoc() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(leftMargin, 14, 12)
	pdf.SetAutoPageBreak(true, 16)
	return pdf
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render pdf")
	}
	return nil
}

func renderLine(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func renderSection(pdf *fpdf.Fpdf, title string, row Row, photos []domain.PhotoRef, load PhotoLoader) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	_, pageH := pdf.GetPageSize()
	for _, f := range row {
		// paginate the field dump when the cursor runs past the page
		if pdf.GetY() > pageH-22 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(48, 6, f.Key, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, f.Value, "", "L", false)
	}

	if len(photos) == 0 || load == nil {
		return
	}
	pdf.Ln(4)
	if pdf.GetY() > pageH-photoHeight-20 {
		pdf.AddPage()
	}
	y := pdf.GetY()
	placed := 0
	for _, ref := range photos {
		if placed == photosPerRow {
			break
		}
		data, err := load(ref.ID)
		if err != nil {
			zap.L().Warn("photo unavailable for pdf", zap.String("id", ref.ID), zap.Error(err))
			continue
		}
		imgType := imageType(ref.Name)
		if imgType == "" {
			continue
		}
		opts := fpdf.ImageOptions{ImageType: imgType}
		pdf.RegisterImageOptionsReader(ref.ID, opts, bytes.NewReader(data))
		x := leftMargin + float64(placed)*(photoWidth+photoGap)
		pdf.ImageOptions(ref.ID, x, y, photoWidth, photoHeight, false, opts, 0, "")
		placed++
	}
	if placed > 0 {
		pdf.SetY(y + photoHeight + 4)
	}
}

func imageType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	default:
		return ""
	}
}
