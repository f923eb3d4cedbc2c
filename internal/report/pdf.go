// Package report renders Cooper Index results as downloadable PDF documents.
// It consumes only the breakdown, total, and recommendation exposed by the
// scoring package.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/farebd/leasehold/api/internal/scoring"
)

// criterionTitles maps slot names to the headings used on the printed report.
var criterionTitles = map[scoring.Criterion]string{
	scoring.CriterionAge:           "Age Range",
	scoring.CriterionLeaseDuration: "Lease Duration",
	scoring.CriterionInsurance:     "Health Insurance",
	scoring.CriterionBalance:       "Annual Personal Account Balance",
	scoring.CriterionLocation:      "Property Location",
	scoring.CriterionSize:          "Property Size (in m2)",
}

// WriteScorePDF writes a one-page score report to w: a header, the per-slot
// breakdown table, the total row, and the recommendation.
func WriteScorePDF(w io.Writer, result *scoring.Result, generatedAt time.Time) error {
	if result == nil {
		return fmt.Errorf("nil score result")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Option labels carry en dashes and the m² glyph; translate from UTF-8
	// into the core-font codepage before writing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(41, 128, 185)
	pdf.Cell(0, 10, "Cooper Calculator Results")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.Cell(0, 6, fmt.Sprintf("Generated on: %s", generatedAt.Format("2006-01-02")))
	pdf.Ln(10)

	const (
		colField  = 60.0
		colOption = 95.0
		colPoints = 25.0
		rowHeight = 8.0
	)

	// Header row.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colField, rowHeight, "Field", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colOption, rowHeight, "Selected Option", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colPoints, rowHeight, "Points", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, entry := range result.Breakdown {
		title := criterionTitles[entry.Criterion]
		if title == "" {
			title = string(entry.Criterion)
		}
		pdf.CellFormat(colField, rowHeight, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colOption, rowHeight, tr(entry.Label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colPoints, rowHeight, fmt.Sprintf("%d", entry.Points), "1", 1, "C", false, 0, "")
	}

	// Total row.
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colField, rowHeight, "", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colOption, rowHeight, "TOTAL POINTS", "1", 0, "L", true, 0, "")
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	total := fmt.Sprintf("%d/%d", result.TotalPoints, scoring.MaxPoints)
	pdf.CellFormat(colPoints, rowHeight, total, "1", 1, "C", true, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.Cell(0, 8, "Recommendation:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	setRecommendationColor(pdf, result.Recommendation)
	pdf.Cell(0, 8, tr(result.Recommendation))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render score report: %w", err)
	}
	return nil
}

// setRecommendationColor mirrors the band colors used on screen.
func setRecommendationColor(pdf *fpdf.Fpdf, recommendation string) {
	switch recommendation {
	case scoring.RecommendationExcellent:
		pdf.SetTextColor(0, 150, 0)
	case scoring.RecommendationGood:
		pdf.SetTextColor(0, 100, 200)
	case scoring.RecommendationFair:
		pdf.SetTextColor(200, 150, 0)
	default:
		pdf.SetTextColor(200, 0, 0)
	}
}
