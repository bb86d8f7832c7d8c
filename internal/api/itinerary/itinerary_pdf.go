package itinerary

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/FACorreiaa/wanderspark-api/internal/types"
)

// WritePDF renders an itinerary as an A4 document.
func WritePDF(w io.Writer, title string, it types.Itinerary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range it.DailyItineraries {
		pdf.SetFillColor(235, 242, 255)
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(0, 9, tr(fmt.Sprintf("Day %d: %s", day.Day, day.Theme)), "", 1, "L", true, 0, "")
		pdf.Ln(1)
		for _, a := range day.Activities {
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s - %s (%s)", a.TimeOfDay, a.Title, a.Type)), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, tr(a.Description), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	if len(it.TravelSuggestions) > 0 {
		sectionHeader(pdf, "Travel options")
		pdf.SetFont("Arial", "", 10)
		for _, s := range it.TravelSuggestions {
			row(pdf, tr, []float64{30, 80, 40, 30}, string(s.Mode), s.Details, s.Duration, s.Price.String())
		}
		pdf.Ln(4)
	}

	if len(it.StaySuggestions) > 0 {
		sectionHeader(pdf, "Where to stay")
		pdf.SetFont("Arial", "", 10)
		for _, s := range it.StaySuggestions {
			row(pdf, tr, []float64{80, 40, 20, 40}, s.Name, string(s.Type), fmt.Sprintf("%.1f", s.Rating), s.Price.String()+" / night")
		}
	}

	if pdf.Err() {
		return fmt.Errorf("failed to build itinerary pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func sectionHeader(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 9, text, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func row(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells ...string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, tr(c), "", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}
