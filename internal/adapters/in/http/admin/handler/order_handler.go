package adminHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "sabordigital/internal/application/usecase"
	orderdom "sabordigital/internal/domain/order"
)

// OrderAdminHandler serves the admin order board: list, detail, and
// status transitions with the prepared customer notification.
type OrderAdminHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderAdminHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderAdminHandler{uc: uc}
}

func (h *OrderAdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}

	parts := pathParts(path, "/admin/orders")
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r, start)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPut:
		h.handleUpdateStatus(w, r, parts[0], start)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *OrderAdminHandler) handleList(w http.ResponseWriter, r *http.Request, start time.Time) {
	qs := r.URL.Query()
	listQ := usecase.OrderListQuery{
		Status: strings.TrimSpace(qs.Get("status")),
		Search: strings.TrimSpace(qs.Get("q")),
	}

	var err error
	if listQ.CreatedFrom, err = parseTimeParam(qs.Get("createdFrom")); err != nil {
		writeErr(w, http.StatusBadRequest, "createdFrom must be RFC3339")
		return
	}
	if listQ.CreatedTo, err = parseTimeParam(qs.Get("createdTo")); err != nil {
		writeErr(w, http.StatusBadRequest, "createdTo must be RFC3339")
		return
	}

	page := orderdom.Page{
		Number:  parseIntDefault(qs.Get("page"), 1),
		PerPage: parseIntDefault(qs.Get("perPage"), 50),
	}

	res, err := h.uc.List(r.Context(), listQ, page)
	if err != nil {
		log.Printf("[admin_order_handler] GET exit status=500 status=%q err=%v", listQ.Status, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[admin_order_handler] GET ok status=%q q=%q page=%d items=%d total=%d elapsed=%s",
		listQ.Status, listQ.Search, page.Number, len(res.Items), res.TotalCount, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      res.Items,
		"totalCount": res.TotalCount,
		"page":       page.Number,
		"perPage":    page.PerPage,
	})
}

func (h *OrderAdminHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	o, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// parseTimeParam parses an optional RFC3339 query parameter.
func parseTimeParam(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type statusUpdateReq struct {
	Status string `json:"status"`
}

func (h *OrderAdminHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request, id string, start time.Time) {
	var req statusUpdateReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	res, err := h.uc.UpdateStatus(r.Context(), id, orderdom.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[admin_order_handler] PUT status ok id=%q status=%q elapsed=%s", id, req.Status, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

func (h *OrderAdminHandler) writeUCErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeErr(w, http.StatusInternalServerError, "unknown error")
	case errors.Is(err, orderdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "order not found")
	case errors.Is(err, orderdom.ErrInvalidTransition), errors.Is(err, orderdom.ErrInvalidStatus):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrOrderInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
