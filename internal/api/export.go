package api

import (
	"net/http"
	"strconv"

	"invoicely/m/internal/pdf"
)

// exportPDF renders the submitted draft and streams it back as a
// download. Nothing is persisted; the draft carries the client-only
// fields (currency, discount, shipping, bank details, logo) that the
// stored shape does not.
func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	var draft pdf.Draft
	if err := decodeJSON(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	output, err := pdf.Render(draft)
	if err != nil {
		h.log.Error().Err(err).Str("invoice_number", draft.InvoiceNumber).Msg("pdf render failed")
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=`+pdf.Filename(draft.InvoiceNumber))
	w.Header().Set("Content-Length", strconv.Itoa(len(output)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(output)
}
