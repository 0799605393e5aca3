package render

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/prospect/internal/report"
)

// WritePDF renders the assembled report as a paginated PDF: a centered
// title block, labeled sections in fixed order, and a page-number footer.
func WritePDF(rec report.Record, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Title block
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Prospect Report: "+rec.CompanyName), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	section := func(label, body string) {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.CellFormat(0, 10, label, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr(body), "", "L", false)
		pdf.Ln(2)
	}

	section("Website Description:", rec.Page.Description)
	section("Year Founded:", rec.Info.YearFounded)
	section("Goals:", report.JoinList(rec.Info.Goals))
	section("Objectives:", report.JoinList(rec.Info.Objectives))
	section("Innovations:", report.JoinList(rec.Info.Innovations))
	section("Contact Information:", rec.Info.ContactInfo)
	section("Summarized Content:", rec.Summary)

	return pdf.OutputFileAndClose(outPath)
}
