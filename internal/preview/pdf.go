package preview

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/MrJamesThe3rd/invoi/internal/invoice"
)

// pdfWriter draws a Document in layout units on an A4 page measured in millimetres.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	doc Document
}

// RenderPDF writes the document as a single A4 page at natural size.
func RenderPDF(w io.Writer, doc Document) error {
	return renderPDF(w, doc, time.Now())
}

func renderPDF(w io.Writer, doc Document, created time.Time) error {
	pdf := gofpdf.New("P", "mm", A4.Name, "")
	pdf.SetMargins(mm(PagePadding), mm(PagePadding), mm(PagePadding))
	pdf.SetAutoPageBreak(true, mm(PagePadding))
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("invoi", false)
	pdf.SetCreationDate(created)

	pw := &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		doc: doc,
	}

	pdf.AddPage()
	pw.header()
	pw.billTo()
	pw.lines()
	pw.totals()
	pw.bank()

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

func mm(units float64) float64 {
	return units * mmPerUnit
}

// pt converts a CSS pixel font size to points.
func pt(px float64) float64 {
	return px * 0.75
}

var (
	ink   = [3]int{0x11, 0x11, 0x11}
	muted = [3]int{0x88, 0x88, 0x88}
	rule  = [3]int{0xE5, 0xE5, 0xE5}
)

func (w *pdfWriter) font(style string, sizePx float64, color [3]int) {
	w.pdf.SetFont("Helvetica", style, pt(sizePx))
	w.pdf.SetTextColor(color[0], color[1], color[2])
}

// text encodes s for the core fonts.
func (w *pdfWriter) text(s string) string {
	return w.tr(s)
}

// money encodes a formatted amount. Symbols with no cp1252 glyph fall back to
// the ISO code.
func (w *pdfWriter) money(s string) string {
	out := w.tr(s)
	if strings.Count(out, ".") == strings.Count(s, ".") {
		return out
	}

	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' || r == ',' || r == '.' {
			return r
		}

		return -1
	}, s)

	return w.tr(invoice.CurrencyCode(w.doc.Currency) + " " + digits)
}

func (w *pdfWriter) contentWidth() float64 {
	return mm(A4.Width - 2*PagePadding)
}

func (w *pdfWriter) header() {
	pdf := w.pdf
	left, top := mm(PagePadding), mm(PagePadding)
	width := w.contentWidth()

	pdf.SetXY(left, top)
	w.font("B", 26, ink)
	pdf.CellFormat(width/2, mm(26), w.text(w.doc.FromName), "", 2, "L", false, 0, "")

	w.font("", 12, muted)
	for _, line := range w.doc.FromLines {
		pdf.MultiCell(width/2, mm(18), w.text(line), "", "L", false)
	}

	bottom := pdf.GetY()

	pdf.SetXY(left+width/2, top)
	w.font("B", 34, ink)
	pdf.CellFormat(width/2, mm(34), "INVOICE", "", 2, "R", false, 0, "")

	if w.doc.InvoiceNumber != "" {
		w.font("", 12, muted)
		pdf.SetX(left + width/2)
		pdf.CellFormat(width/2, mm(18), w.text(w.doc.InvoiceNumber), "", 2, "R", false, 0, "")
	}

	pdf.SetXY(left, max(bottom, pdf.GetY())+mm(48))
}

func (w *pdfWriter) billTo() {
	pdf := w.pdf
	left := mm(PagePadding)
	width := w.contentWidth()
	top := pdf.GetY()

	w.font("B", 10, muted)
	pdf.CellFormat(width/2, mm(16), "BILL TO", "", 2, "L", false, 0, "")

	w.font("B", 15, ink)
	pdf.CellFormat(width/2, mm(22), w.text(w.doc.ToName), "", 2, "L", false, 0, "")

	w.font("", 12, muted)
	for _, line := range w.doc.ToLines {
		pdf.MultiCell(width/2, mm(18), w.text(line), "", "L", false)
	}

	bottom := pdf.GetY()

	colWidth := mm(112)
	x := left + width - colWidth*float64(len(w.doc.Dates))

	for _, d := range w.doc.Dates {
		pdf.SetXY(x, top)
		w.font("B", 10, muted)
		pdf.CellFormat(colWidth, mm(16), strings.ToUpper(d.Label), "", 2, "R", false, 0, "")
		pdf.SetX(x)
		w.font("", 12, ink)
		pdf.CellFormat(colWidth, mm(18), w.text(d.Value), "", 2, "R", false, 0, "")

		x += colWidth
	}

	pdf.SetXY(left, max(bottom, top+mm(34))+mm(40))
}

func (w *pdfWriter) lines() {
	pdf := w.pdf
	left := mm(PagePadding)
	width := w.contentWidth()
	qtyW, numW := mm(56), mm(128)
	descW := width - qtyW - 2*numW

	w.font("B", 10, ink)
	pdf.CellFormat(descW, mm(36), "DESCRIPTION", "", 0, "L", false, 0, "")
	pdf.CellFormat(qtyW, mm(36), "QTY", "", 0, "C", false, 0, "")
	pdf.CellFormat(numW, mm(36), "RATE", "", 0, "R", false, 0, "")
	pdf.CellFormat(numW, mm(36), "AMOUNT", "", 1, "R", false, 0, "")

	pdf.SetDrawColor(ink[0], ink[1], ink[2])
	pdf.SetLineWidth(mm(1.5))
	pdf.Line(left, pdf.GetY(), left+width, pdf.GetY())

	pdf.SetDrawColor(rule[0], rule[1], rule[2])
	pdf.SetLineWidth(mm(1))

	for _, line := range w.doc.Lines {
		w.font("", 13, ink)
		pdf.CellFormat(descW, mm(46), w.text(line.Description), "", 0, "L", false, 0, "")
		w.font("", 13, muted)
		pdf.CellFormat(qtyW, mm(46), line.Quantity, "", 0, "C", false, 0, "")
		pdf.CellFormat(numW, mm(46), w.money(line.Rate), "", 0, "R", false, 0, "")
		w.font("", 13, ink)
		pdf.CellFormat(numW, mm(46), w.money(line.Amount), "", 1, "R", false, 0, "")
		pdf.Line(left, pdf.GetY(), left+width, pdf.GetY())
	}

	pdf.Ln(mm(32))
}

func (w *pdfWriter) totals() {
	pdf := w.pdf
	left := mm(PagePadding)
	width := w.contentWidth()
	labelW, numW := mm(96), mm(128)
	x := left + width - labelW - numW

	pdf.SetX(x)
	w.font("", 12, muted)
	pdf.CellFormat(labelW, mm(24), "Subtotal", "", 0, "R", false, 0, "")
	w.font("", 12, ink)
	pdf.CellFormat(numW, mm(24), w.money(w.doc.Subtotal), "", 1, "R", false, 0, "")

	pdf.Line(left+width-mm(192), pdf.GetY()+mm(4), left+width, pdf.GetY()+mm(4))
	pdf.Ln(mm(8))

	pdf.SetX(x)
	w.font("B", 15, ink)
	pdf.CellFormat(labelW, mm(32), "Total", "", 0, "R", false, 0, "")
	w.font("B", 20, ink)
	pdf.CellFormat(numW, mm(32), w.money(w.doc.Total), "", 1, "R", false, 0, "")

	pdf.Ln(mm(48))
}

func (w *pdfWriter) bank() {
	if len(w.doc.Bank) == 0 {
		return
	}

	pdf := w.pdf
	left := mm(PagePadding)
	width := w.contentWidth()

	pdf.Line(left, pdf.GetY(), left+width, pdf.GetY())
	pdf.Ln(mm(24))

	w.font("B", 10, muted)
	pdf.CellFormat(width, mm(20), "PAYMENT DETAILS", "", 1, "L", false, 0, "")

	for _, d := range w.doc.Bank {
		w.font("", 12, muted)
		pdf.CellFormat(mm(104), mm(22), d.Label, "", 0, "L", false, 0, "")
		w.font("", 12, ink)
		pdf.CellFormat(width-mm(104), mm(22), w.text(d.Value), "", 1, "L", false, 0, "")
	}
}
