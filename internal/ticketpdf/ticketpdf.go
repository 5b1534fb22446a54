// Package ticketpdf renders a booked ticket as a printable PDF.
package ticketpdf

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/phpdave11/gofpdf"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Render returns the PDF bytes and a download filename for t.
func Render(t *models.Ticket) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("My Rail E-Ticket", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MY RAIL E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket         : %s", t.ID),
		fmt.Sprintf("Record         : %s", orDash(t.RecordID)),
		fmt.Sprintf("Passengers     : %s", orDash(t.FullName)),
		fmt.Sprintf("No. of seats   : %d", t.Passengers),
		fmt.Sprintf("Train          : %s", orDash(t.TrainName)),
		fmt.Sprintf("Coach          : %s", orDash(t.Coach)),
		fmt.Sprintf("Total paid     : Rs. %d", t.Price),
		fmt.Sprintf("Booked at      : %s", t.BookedAt.Format("2006-01-02 15:04 MST")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, tr(l))
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid photo ID for every passenger listed on this ticket.", "", "", false)

	if err := pdf.Error(); err != nil {
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}

	name := unsafeFilename.ReplaceAllString(t.TrainName, "_")
	return buf.Bytes(), fmt.Sprintf("TICKET_%s_%s.pdf", name, t.ID), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
