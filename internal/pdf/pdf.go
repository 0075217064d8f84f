// Package pdf lays out an invoice draft onto a single A4 page. The
// draft is the editor's shape, not the persisted one: it carries the
// client-only fields (currency, discount, shipping, bank details,
// logo) that never reach the database. Rendering is read-only and
// recomputes the money block from the items, so the artifact always
// agrees with the calculator.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"invoicely/m/internal/calc"
)

// Draft is the in-editor invoice representation.
type Draft struct {
	InvoiceNumber  string      `json:"invoiceNumber"`
	PurchaseOrder  string      `json:"purchaseOrder"`
	CompanyDetails string      `json:"companyDetails"`
	BillTo         string      `json:"billTo"`
	Currency       string      `json:"currency"`
	InvoiceDate    string      `json:"invoiceDate"`
	DueDate        string      `json:"dueDate"`
	Items          []DraftItem `json:"items"`
	Notes          string      `json:"notes"`
	BankDetails    string      `json:"bankDetails"`
	TaxRate        calc.Amount `json:"taxRate"`
	Discount       calc.Amount `json:"discount"`
	ShippingFee    calc.Amount `json:"shippingFee"`
	Logo           string      `json:"logo"`
}

type DraftItem struct {
	Description string      `json:"description"`
	UnitCost    calc.Amount `json:"unitCost"`
	Quantity    calc.Amount `json:"quantity"`
}

const (
	pageMargin = 15.0
	contentW   = 180.0
	logoBoxW   = 45.0
	logoBoxH   = 22.0
)

var (
	labelColor = [3]int{91, 111, 119}
	textColor  = [3]int{32, 33, 36}
)

// Render produces the PDF bytes for a draft.
func Render(d Draft) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	drawHeader(doc, d)
	drawInfoRow(doc, d)
	drawPartyRow(doc, d)

	items := make([]calc.LineInput, len(d.Items))
	for i, item := range d.Items {
		items[i] = calc.LineInput{UnitCost: float64(item.UnitCost), Quantity: float64(item.Quantity)}
	}
	totals := calc.Compute(items, float64(d.TaxRate), float64(d.Discount), float64(d.ShippingFee))

	drawItemsTable(doc, d)
	drawBottom(doc, d, totals)
	drawBankDetails(doc, d)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawHeader(doc *gofpdf.Fpdf, d Draft) {
	doc.SetFont("Helvetica", "B", 26)
	doc.SetTextColor(labelColor[0], labelColor[1], labelColor[2])
	doc.SetXY(pageMargin, pageMargin)
	doc.CellFormat(100, 12, "Invoice", "", 0, "L", false, 0, "")

	// Logo sits at the top-right corner without shifting the flow.
	if img, imgType, ok := decodeLogo(d.Logo); ok {
		name := "logo"
		opts := gofpdf.ImageOptions{ImageType: imgType}
		info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		if info != nil && info.Width() > 0 && info.Height() > 0 {
			w, h := fitBox(info.Width(), info.Height(), logoBoxW, logoBoxH)
			pageW, _ := doc.GetPageSize()
			doc.ImageOptions(name, pageW-pageMargin-w, pageMargin, w, h, false, opts, 0, "")
		}
	}

	doc.SetY(pageMargin + 18)
}

func drawInfoRow(doc *gofpdf.Fpdf, d Draft) {
	y := doc.GetY() + 4
	colW := contentW / 3
	cols := []struct{ label, value string }{
		{"Invoice Number", d.InvoiceNumber},
		{"Date of Issue", d.InvoiceDate},
		{"Due Date", orNA(d.DueDate)},
	}
	for i, col := range cols {
		x := pageMargin + float64(i)*colW
		doc.SetXY(x, y)
		setLabelFont(doc)
		doc.CellFormat(colW, 4, strings.ToUpper(col.label), "", 2, "L", false, 0, "")
		setValueFont(doc, 11)
		doc.CellFormat(colW, 5, col.value, "", 0, "L", false, 0, "")
	}
	doc.SetY(y + 12)
}

func drawPartyRow(doc *gofpdf.Fpdf, d Draft) {
	y := doc.GetY() + 4
	colW := contentW / 3
	cols := []struct{ label, value string }{
		{"Billed To", orNA(d.BillTo)},
		{"From", orNA(d.CompanyDetails)},
		{"Purchase Order", orNA(d.PurchaseOrder)},
	}
	bottom := y
	for i, col := range cols {
		x := pageMargin + float64(i)*colW
		doc.SetXY(x, y)
		setLabelFont(doc)
		doc.CellFormat(colW, 4, strings.ToUpper(col.label), "", 2, "L", false, 0, "")
		setValueFont(doc, 10)
		doc.SetX(x)
		doc.MultiCell(colW-5, 4.5, col.value, "", "L", false)
		if doc.GetY() > bottom {
			bottom = doc.GetY()
		}
	}
	doc.SetY(bottom + 6)
}

func drawItemsTable(doc *gofpdf.Fpdf, d Draft) {
	const (
		descW   = 80.0
		unitW   = 35.0
		qtyW    = 20.0
		amountW = 45.0
	)

	setLabelFont(doc)
	doc.SetX(pageMargin)
	doc.CellFormat(descW, 5, "DESCRIPTION", "", 0, "L", false, 0, "")
	doc.CellFormat(unitW, 5, "UNIT COST", "", 0, "R", false, 0, "")
	doc.CellFormat(qtyW, 5, "QTY", "", 0, "C", false, 0, "")
	doc.CellFormat(amountW, 5, "AMOUNT", "", 1, "R", false, 0, "")

	doc.SetDrawColor(218, 220, 224)
	doc.Line(pageMargin, doc.GetY()+1, pageMargin+contentW, doc.GetY()+1)
	doc.SetY(doc.GetY() + 3)

	setValueFont(doc, 10)
	for _, item := range d.Items {
		amount := calc.LineAmount(float64(item.UnitCost), float64(item.Quantity))
		doc.SetX(pageMargin)
		doc.CellFormat(descW, 6, orNA(item.Description), "", 0, "L", false, 0, "")
		doc.CellFormat(unitW, 6, fmt.Sprintf("%.2f", float64(item.UnitCost)), "", 0, "R", false, 0, "")
		doc.CellFormat(qtyW, 6, fmt.Sprintf("%g", float64(item.Quantity)), "", 0, "C", false, 0, "")
		doc.CellFormat(amountW, 6, calc.Format(amount, d.Currency), "", 1, "R", false, 0, "")
	}

	doc.Line(pageMargin, doc.GetY()+3, pageMargin+contentW, doc.GetY()+3)
	doc.SetY(doc.GetY() + 8)
}

func drawBottom(doc *gofpdf.Fpdf, d Draft, totals calc.Totals) {
	top := doc.GetY()
	termsW := 95.0
	totalsX := pageMargin + termsW + 10
	totalsW := contentW - termsW - 10

	// Terms only when notes are present.
	termsBottom := top
	if strings.TrimSpace(d.Notes) != "" {
		doc.SetXY(pageMargin, top)
		setLabelFont(doc)
		doc.CellFormat(termsW, 4, "TERMS", "", 2, "L", false, 0, "")
		setValueFont(doc, 10)
		doc.SetX(pageMargin)
		doc.MultiCell(termsW, 4.5, d.Notes, "", "L", false)
		termsBottom = doc.GetY()
	}

	y := top
	y = totalRow(doc, totalsX, y, totalsW, "SUBTOTAL", calc.Format(totals.Subtotal, d.Currency))
	if d.TaxRate > 0 {
		y = totalRow(doc, totalsX, y, totalsW,
			fmt.Sprintf("TAX RATE (%g%%)", float64(d.TaxRate)),
			calc.Format(totals.TaxAmount, d.Currency))
	}
	if d.ShippingFee > 0 {
		y = totalRow(doc, totalsX, y, totalsW, "SHIPPING", calc.Format(float64(d.ShippingFee), d.Currency))
	}
	if d.Discount > 0 {
		y = totalRow(doc, totalsX, y, totalsW, "DISCOUNT", "-"+calc.Format(float64(d.Discount), d.Currency))
	}

	// Grand total, always.
	y += 3
	doc.SetXY(totalsX, y)
	setLabelFont(doc)
	doc.CellFormat(totalsW, 4, "INVOICE TOTAL", "", 2, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 12)
	doc.SetTextColor(0, 0, 0)
	doc.SetX(totalsX)
	doc.CellFormat(totalsW, 6, calc.Format(totals.Total, d.Currency), "", 1, "R", false, 0, "")

	if doc.GetY() < termsBottom {
		doc.SetY(termsBottom)
	}
}

func drawBankDetails(doc *gofpdf.Fpdf, d Draft) {
	if strings.TrimSpace(d.BankDetails) == "" {
		return
	}
	doc.SetY(doc.GetY() + 6)
	setLabelFont(doc)
	doc.CellFormat(contentW, 4, "BANK ACCOUNT DETAILS", "", 2, "L", false, 0, "")
	setValueFont(doc, 10)
	doc.MultiCell(contentW, 4.5, d.BankDetails, "", "L", false)
}

func totalRow(doc *gofpdf.Fpdf, x, y, w float64, label, value string) float64 {
	doc.SetXY(x, y)
	setLabelFont(doc)
	doc.CellFormat(w/2, 6, label, "", 0, "L", false, 0, "")
	setValueFont(doc, 11)
	doc.CellFormat(w/2, 6, value, "", 1, "R", false, 0, "")
	return y + 7
}

func setLabelFont(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(labelColor[0], labelColor[1], labelColor[2])
}

func setValueFont(doc *gofpdf.Fpdf, size float64) {
	doc.SetFont("Helvetica", "", size)
	doc.SetTextColor(textColor[0], textColor[1], textColor[2])
}

// decodeLogo accepts a base64 data URL and returns the raw image bytes
// plus the gofpdf image type. Anything that does not parse as a
// PNG/JPEG data URL is silently skipped: a broken logo should not sink
// the whole export.
func decodeLogo(dataURL string) ([]byte, string, bool) {
	dataURL = strings.TrimSpace(dataURL)
	if dataURL == "" {
		return nil, "", false
	}
	header, payload, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return nil, "", false
	}
	var imgType string
	switch {
	case strings.Contains(header, "image/png"):
		imgType = "PNG"
	case strings.Contains(header, "image/jpeg"), strings.Contains(header, "image/jpg"):
		imgType = "JPG"
	default:
		return nil, "", false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return raw, imgType, true
}

func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename derives the download name from the invoice number.
func Filename(invoiceNumber string) string {
	number := unsafeFilename.ReplaceAllString(strings.TrimSpace(invoiceNumber), "_")
	if number == "" {
		number = "draft"
	}
	return "invoice-" + number + ".pdf"
}
