package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// GenerateCertificatePDF renders a landscape A4 completion certificate and
// returns the PDF bytes.
func GenerateCertificatePDF(studentName, courseTitle string, score int, issuedAt time.Time, verificationCode string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Certificate of Completion", false)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Border
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(33, 150, 83)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")
	pdf.SetLineWidth(0.3)
	pdf.Rect(11, 11, pageW-22, pageH-22, "D")

	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(33, 33, 33)
	pdf.SetY(34)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(85, 85, 85)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(33, 150, 83)
	pdf.Ln(2)
	pdf.CellFormat(0, 12, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(85, 85, 85)
	pdf.Ln(2)
	pdf.CellFormat(0, 8, "has successfully completed the course", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(33, 33, 33)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, courseTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(85, 85, 85)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, fmt.Sprintf("with a score of %d%%", score), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Issued on "+issuedAt.Format("January 2, 2006"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(140, 140, 140)
	pdf.SetY(pageH - 28)
	pdf.CellFormat(0, 6, "Verification code: "+verificationCode, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, "Verify at aimwell.app/verify-certificate", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %v", err)
	}
	return buf.Bytes(), nil
}
