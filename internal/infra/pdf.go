package infra

import (
	"fmt"
	"io"
	"unicode/utf8"

	"greengrocer/internal/model"

	"github.com/go-pdf/fpdf"
)

const (
	ticketWidthMM  = 74.0
	ticketMarginMM = 4.0
	// header, separators, totals and footer; item rows are added on top
	ticketBaseHeightMM = 62.0
	ticketRowHeightMM  = 5.0
	ticketNameMaxRunes = 22
)

// RenderReceiptPDF writes a thermal-ticket style PDF for a stored receipt.
// The page grows with the number of lines so long receipts stay on one ticket.
func RenderReceiptPDF(w io.Writer, storeName string, r *model.Receipt) error {
	height := ticketBaseHeightMM + float64(len(r.Items))*ticketRowHeightMM
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: ticketWidthMM, Ht: height},
	})
	pdf.SetMargins(ticketMarginMM, ticketMarginMM, ticketMarginMM)
	pdf.SetAutoPageBreak(false, ticketMarginMM)
	pdf.AddPage()

	contentW := ticketWidthMM - 2*ticketMarginMM
	separator := func() {
		pdf.Ln(2)
		pdf.Line(ticketMarginMM, pdf.GetY(), ticketWidthMM-ticketMarginMM, pdf.GetY())
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Sales receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, r.ReceiptNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, r.CreatedAt.UTC().Format("2006-01-02  15:04 UTC"), "", 1, "L", false, 0, "")
	separator()

	nameW := contentW * 0.48
	qtyW := contentW * 0.22
	totalW := contentW * 0.30

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(nameW, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(totalW, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range r.Items {
		pdf.CellFormat(nameW, ticketRowHeightMM, truncateName(item.ProductName), "", 0, "L", false, 0, "")
		pdf.CellFormat(qtyW, ticketRowHeightMM, item.Quantity.String()+" "+item.Unit, "", 0, "C", false, 0, "")
		pdf.CellFormat(totalW, ticketRowHeightMM, item.Total.StringFixed(2), "", 1, "R", false, 0, "")
	}
	separator()

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(nameW+qtyW, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(totalW, 6, r.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for shopping with us", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render receipt %s: %w", r.ReceiptNumber, err)
	}
	return nil
}

// truncateName shortens on rune boundaries; fpdf core fonts have no ellipsis glyph.
func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= ticketNameMaxRunes {
		return name
	}
	runes := []rune(name)
	return string(runes[:ticketNameMaxRunes-3]) + "..."
}
