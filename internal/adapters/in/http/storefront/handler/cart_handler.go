package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "sabordigital/internal/application/usecase"
	cartdom "sabordigital/internal/domain/cart"
)

// CartHandler serves the storefront cart endpoints.
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	if h.uc == nil {
		log.Printf("[cart_handler] exit status=500 reason=uc is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	isItems := strings.HasSuffix(path, "/cart/items")
	isCart := !isItems && (strings.HasSuffix(path, "/cart") || path == "/")

	switch {
	case r.Method == http.MethodGet && isCart:
		h.handleGet(w, r, start)
	case r.Method == http.MethodDelete && isCart:
		h.handleClear(w, r, start)
	case r.Method == http.MethodPost && isItems:
		h.handleAddItem(w, r, start)
	case r.Method == http.MethodPut && isItems:
		h.handleSetQuantity(w, r, start)
	case r.Method == http.MethodDelete && isItems:
		h.handleRemoveItem(w, r, start)
	default:
		log.Printf("[cart_handler] exit status=404 method=%s path=%q elapsed=%s", r.Method, path, time.Since(start))
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	sessionID := readSessionID(r, "")
	if sessionID == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	c, err := h.uc.Get(r.Context(), sessionID)
	if err != nil {
		log.Printf("[cart_handler] GET exit status=500 sessionId=%q err=%v", sessionID, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[cart_handler] GET ok sessionId=%q items=%d elapsed=%s", sessionID, c.TotalItems(), time.Since(start))
	writeJSON(w, http.StatusOK, cartDTO(c, cartdom.Mutation{}))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	sessionID := readSessionID(r, "")
	if sessionID == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	c, mut, err := h.uc.Clear(r.Context(), sessionID)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[cart_handler] DELETE cart ok sessionId=%q elapsed=%s", sessionID, time.Since(start))
	writeJSON(w, http.StatusOK, cartDTO(c, mut))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sessionID := readSessionID(r, req.SessionID)
	menuItemID := strings.TrimSpace(req.MenuItemID)
	name := strings.TrimSpace(req.Name)

	if sessionID == "" || menuItemID == "" || name == "" || req.PriceCents < 0 || req.Quantity < 1 {
		writeErr(w, http.StatusBadRequest, "sessionId, menuItemId, name, priceCents(>=0), quantity(>=1) are required")
		return
	}

	c, mut, err := h.uc.AddItem(r.Context(), sessionID, menuItemID, name, req.PriceCents, req.Quantity, strings.TrimSpace(req.ImageURL))
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[cart_handler] POST add-item ok sessionId=%q menuItemId=%q outcome=%s elapsed=%s",
		sessionID, menuItemID, mut.Outcome, time.Since(start))
	writeJSON(w, http.StatusOK, cartDTO(c, mut))
}

func (h *CartHandler) handleSetQuantity(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sessionID := readSessionID(r, req.SessionID)
	lineID := strings.TrimSpace(req.LineID)
	if sessionID == "" || lineID == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and lineId are required")
		return
	}

	c, mut, err := h.uc.SetQuantity(r.Context(), sessionID, lineID, req.Quantity)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[cart_handler] PUT set-qty ok sessionId=%q lineId=%q qty=%d outcome=%s elapsed=%s",
		sessionID, lineID, req.Quantity, mut.Outcome, time.Since(start))
	writeJSON(w, http.StatusOK, cartDTO(c, mut))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req cartItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sessionID := readSessionID(r, req.SessionID)
	lineID := strings.TrimSpace(req.LineID)
	if sessionID == "" || lineID == "" {
		writeErr(w, http.StatusBadRequest, "sessionId and lineId are required")
		return
	}

	c, mut, err := h.uc.RemoveItem(r.Context(), sessionID, lineID)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[cart_handler] DELETE remove-item ok sessionId=%q lineId=%q outcome=%s elapsed=%s",
		sessionID, lineID, mut.Outcome, time.Since(start))
	writeJSON(w, http.StatusOK, cartDTO(c, mut))
}

func (h *CartHandler) writeUCErr(w http.ResponseWriter, err error) {
	if err == nil {
		writeErr(w, http.StatusInternalServerError, "unknown error")
		return
	}
	if errors.Is(err, usecase.ErrCartInvalidArgument) || errors.Is(err, cartdom.ErrInvalidCart) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}

// -------------------------
// request / response DTOs
// -------------------------

type cartItemReq struct {
	SessionID  string `json:"sessionId"`
	LineID     string `json:"lineId"`
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	ImageURL   string `json:"imageUrl"`
}

type cartLineDTO struct {
	ID            string `json:"id"`
	MenuItemID    string `json:"menuItemId"`
	Name          string `json:"name"`
	PriceCents    int64  `json:"priceCents"`
	Quantity      int    `json:"quantity"`
	ImageURL      string `json:"imageUrl,omitempty"`
	SubtotalCents int64  `json:"subtotalCents"`
}

func cartDTO(c *cartdom.Cart, mut cartdom.Mutation) map[string]any {
	lines := []cartLineDTO{}
	if c != nil {
		for _, li := range c.Items {
			lines = append(lines, cartLineDTO{
				ID:            li.ID,
				MenuItemID:    li.MenuItemID,
				Name:          li.Name,
				PriceCents:    li.PriceCents,
				Quantity:      li.Quantity,
				ImageURL:      li.ImageURL,
				SubtotalCents: li.SubtotalCents(),
			})
		}
	}

	out := map[string]any{
		"id":         "",
		"items":      lines,
		"totalItems": c.TotalItems(),
		"totalCents": c.TotalCents(),
	}
	if c != nil {
		out["id"] = c.ID
		if !c.UpdatedAt.IsZero() {
			out["updatedAt"] = c.UpdatedAt.UTC()
		}
	}
	if mut.Outcome != "" {
		out["outcome"] = string(mut.Outcome)
		if mut.ItemName != "" {
			out["itemName"] = mut.ItemName
		}
	}
	return out
}
