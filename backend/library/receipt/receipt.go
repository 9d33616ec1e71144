// Package receipt renders the case submission receipt. Render is a pure
// function of its inputs so the document can be tested without a UI or a
// network in sight.
package receipt

import (
	"bytes"
	"fmt"
	"time"

	"evidentia/backend/model"

	"github.com/jung-kurt/gofpdf"
)

const marginX = 20.0

// Render produces the single-page receipt PDF. The layout is fixed
// absolute positions; long descriptions are not wrapped (acknowledged
// presentation limitation, kept as-is).
func Render(kase *model.Case, file *model.CaseFile, submittedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Pin the document metadata clock so identical inputs yield
	// identical bytes.
	pdf.SetCreationDate(submittedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(marginX, 20, "Case Submission Receipt")

	pdf.SetFontSize(12)
	description := kase.Description
	if description == "" {
		description = "N/A"
	}
	pdf.Text(marginX, 40, "Case Name: "+kase.CaseName)
	pdf.Text(marginX, 50, "Case Number: "+kase.CaseNumber)
	pdf.Text(marginX, 60, "Description: "+description)
	pdf.Text(marginX, 70, "Status: "+kase.Status)
	pdf.Text(marginX, 80, "Submitted At: "+submittedAt.Format("1/2/2006, 3:04:05 PM"))

	if file != nil {
		pdf.Text(marginX, 90, "File Name: "+file.FileName)
		pdf.Text(marginX, 100, "File Type: "+file.FileType)
		pdf.Text(marginX, 110, fmt.Sprintf("File Size: %.2f KB", float64(file.FileSize)/1024))

		pdf.SetTextColor(0, 0, 255)
		pdf.Text(marginX, 120, "File URL")
		pdf.LinkString(marginX, 115, pdf.GetStringWidth("File URL"), 6, file.StoragePath)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Text(marginX, 140, "Thank you for submitting your case.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename derives the download name offered for a rendered receipt.
func Filename(caseNumber string) string {
	return caseNumber + "_case_receipt.pdf"
}
