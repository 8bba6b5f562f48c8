package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/opsdesk/opsdesk/internal/domain/invoice"
)

type lineItemPayload struct {
	ProjectID   string  `json:"projectId"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TaxRate     float64 `json:"taxRate"`
}

type invoicePayload struct {
	Number      string            `json:"invoiceNumber"`
	ClientID    string            `json:"clientId"`
	InvoiceDate time.Time         `json:"invoiceDate"`
	DueDate     time.Time         `json:"dueDate"`
	Status      string            `json:"status"`
	Items       []lineItemPayload `json:"items"`
	Notes       string            `json:"notes"`
	Terms       string            `json:"terms"`
}

func (p invoicePayload) lineItems() []invoice.LineItem {
	items := make([]invoice.LineItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = invoice.LineItem{
			ProjectID:   it.ProjectID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			TaxRate:     it.TaxRate,
		}
	}
	return items
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var payload invoicePayload
	if !decodeBody(w, r, &payload) {
		return
	}

	created, err := s.invoices.Create(r.Context(), invoice.CreateRequest{
		Number:      payload.Number,
		ClientID:    payload.ClientID,
		InvoiceDate: payload.InvoiceDate,
		DueDate:     payload.DueDate,
		Status:      invoice.Status(payload.Status),
		Items:       payload.lineItems(),
		Notes:       payload.Notes,
		Terms:       payload.Terms,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "invoice created", created)
}

func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := invoice.ListOptions{
		Status:   invoice.Status(q.Get("status")),
		ClientID: q.Get("clientId"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		opts.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}

	invoices, total, err := s.invoices.List(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "invoices fetched", map[string]any{
		"invoices": invoices,
		"total":    total,
	})
}

func (s *Server) handleGetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoices.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "invoice fetched", inv)
}

func (s *Server) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var payload invoicePayload
	if !decodeBody(w, r, &payload) {
		return
	}

	updated, err := s.invoices.Update(r.Context(), r.PathValue("id"), invoice.UpdateRequest{
		Number:      payload.Number,
		InvoiceDate: payload.InvoiceDate,
		DueDate:     payload.DueDate,
		Status:      invoice.Status(payload.Status),
		Items:       payload.lineItems(),
		Notes:       payload.Notes,
		Terms:       payload.Terms,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "invoice updated", updated)
}

func (s *Server) handleMarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	inv, alreadyPaid, err := s.invoices.MarkPaid(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	message := "invoice marked paid"
	if alreadyPaid {
		message = "invoice already paid"
	}
	writeJSON(w, http.StatusOK, message, inv)
}

func (s *Server) handleDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := s.invoices.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, "invoice deleted", nil)
}
