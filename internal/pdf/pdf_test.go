package pdf

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDraft() Draft {
	return Draft{
		InvoiceNumber:  "INV042",
		PurchaseOrder:  "PO-7",
		CompanyDetails: "Acme Ltd\n1 Main St\nbilling@acme.test",
		BillTo:         "Globex\n9 Side Rd",
		Currency:       "USD",
		InvoiceDate:    "2026-09-01",
		DueDate:        "2026-10-01",
		Items: []DraftItem{
			{Description: "Design", UnitCost: 250, Quantity: 2},
			{Description: "Development", UnitCost: 100, Quantity: 5},
		},
		Notes:       "Net 30",
		BankDetails: "IBAN DE00 0000 0000",
		TaxRate:     10,
		Discount:    50,
		ShippingFee: 20,
	}
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(sampleDraft())
	require.NoError(t, err)
	require.Greater(t, len(out), 1000)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderMinimalDraft(t *testing.T) {
	// Conditional sections (tax, shipping, discount, terms, bank
	// details, logo, due date) all absent.
	out, err := Render(Draft{
		InvoiceNumber: "INV001",
		InvoiceDate:   "2026-09-01",
		Currency:      "EUR",
		Items:         []DraftItem{{Description: "Thing", UnitCost: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderWithLogo(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	draft := sampleDraft()
	draft.Logo = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	plain, err := Render(sampleDraft())
	require.NoError(t, err)
	withLogo, err := Render(draft)
	require.NoError(t, err)
	assert.Greater(t, len(withLogo), len(plain))
}

func TestRenderSkipsUnusableLogo(t *testing.T) {
	draft := sampleDraft()
	draft.Logo = "data:image/svg+xml;base64,PHN2Zy8+"
	_, err := Render(draft)
	require.NoError(t, err)

	draft.Logo = "not a data url"
	_, err = Render(draft)
	require.NoError(t, err)
}

func TestDraftDecodesSloppyNumbers(t *testing.T) {
	var d Draft
	err := json.Unmarshal([]byte(`{
        "invoiceNumber": "INV001",
        "items": [{"description": "x", "unitCost": "19.99", "quantity": ""}],
        "taxRate": "10",
        "discount": null,
        "shippingFee": "oops"
    }`), &d)
	require.NoError(t, err)
	require.Len(t, d.Items, 1)
	assert.InDelta(t, 19.99, float64(d.Items[0].UnitCost), 1e-9)
	assert.Zero(t, float64(d.Items[0].Quantity))
	assert.InDelta(t, 10, float64(d.TaxRate), 1e-9)
	assert.Zero(t, float64(d.Discount))
	assert.Zero(t, float64(d.ShippingFee))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV001.pdf", Filename("INV001"))
	assert.Equal(t, "invoice-INV_2026_09.pdf", Filename("INV/2026 09"))
	assert.Equal(t, "invoice-draft.pdf", Filename("  "))
}
