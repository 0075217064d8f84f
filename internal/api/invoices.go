package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"invoicely/m/domain"
	"invoicely/m/internal/calc"
)

type invoiceItemRequest struct {
	Description string      `json:"description"`
	Quantity    calc.Amount `json:"quantity"`
	Price       calc.Amount `json:"price"`
	Total       calc.Amount `json:"total"`
}

// invoiceRequest is the wire shape for create and update. Field names
// are camelCase on the way in; stored rows serialize snake_case.
// Totals are client-computed and stored as submitted.
type invoiceRequest struct {
	InvoiceNumber  string               `json:"invoiceNumber" validate:"required"`
	InvoiceDate    string               `json:"invoiceDate" validate:"required"`
	DueDate        *string              `json:"dueDate"`
	CompanyName    string               `json:"companyName"`
	CompanyAddress string               `json:"companyAddress"`
	CompanyEmail   string               `json:"companyEmail"`
	CompanyPhone   string               `json:"companyPhone"`
	ClientName     string               `json:"clientName"`
	ClientAddress  string               `json:"clientAddress"`
	ClientEmail    string               `json:"clientEmail"`
	ClientPhone    string               `json:"clientPhone"`
	Items          []invoiceItemRequest `json:"items"`
	Subtotal       calc.Amount          `json:"subtotal"`
	TaxRate        calc.Amount          `json:"taxRate"`
	TaxAmount      calc.Amount          `json:"taxAmount"`
	TotalAmount    calc.Amount          `json:"totalAmount"`
	Notes          string               `json:"notes"`
	Status         string               `json:"status"`
}

func (req invoiceRequest) toInput() domain.InvoiceInput {
	due := req.DueDate
	if due != nil && strings.TrimSpace(*due) == "" {
		due = nil
	}
	items := make([]domain.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.ItemInput{
			Description: item.Description,
			Quantity:    float64(item.Quantity),
			Price:       float64(item.Price),
			Total:       float64(item.Total),
		}
	}
	return domain.InvoiceInput{
		InvoiceNumber:  req.InvoiceNumber,
		InvoiceDate:    req.InvoiceDate,
		DueDate:        due,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyEmail:   req.CompanyEmail,
		CompanyPhone:   req.CompanyPhone,
		ClientName:     req.ClientName,
		ClientAddress:  req.ClientAddress,
		ClientEmail:    req.ClientEmail,
		ClientPhone:    req.ClientPhone,
		Items:          items,
		Subtotal:       float64(req.Subtotal),
		TaxRate:        float64(req.TaxRate),
		TaxAmount:      float64(req.TaxAmount),
		TotalAmount:    float64(req.TotalAmount),
		Notes:          req.Notes,
		Status:         req.Status,
	}
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	summaries, err := h.invoices.List(r.Context(), user.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("list invoices failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoices")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, err := invoiceID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	invoice, err := h.invoices.Get(r.Context(), user.ID, id)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("invoice_id", id).Msg("get invoice failed")
		respondError(w, http.StatusInternalServerError, "Failed to fetch invoice")
		return
	}
	respondJSON(w, http.StatusOK, invoice)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invoiceNumber and invoiceDate are required")
		return
	}

	invoiceID, err := h.invoices.Create(r.Context(), user.ID, req.toInput())
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", user.ID).Msg("create invoice failed")
		respondError(w, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Invoice created successfully",
		"invoiceId": invoiceID,
	})
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, err := invoiceID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invoiceNumber and invoiceDate are required")
		return
	}

	err = h.invoices.Update(r.Context(), user.ID, id, req.toInput())
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("invoice_id", id).Msg("update invoice failed")
		respondError(w, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Invoice updated successfully"})
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, err := invoiceID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid invoice id")
		return
	}

	err = h.invoices.Delete(r.Context(), user.ID, id)
	if errors.Is(err, domain.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Invoice not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Int64("invoice_id", id).Msg("delete invoice failed")
		respondError(w, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Invoice deleted successfully"})
}

func invoiceID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
