package storeHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	usecase "sabordigital/internal/application/usecase"
	menudom "sabordigital/internal/domain/menu"
)

// CatalogHandler serves the public menu. Only available items are
// returned; the admin surface has its own handler for the full catalog.
type CatalogHandler struct {
	uc *usecase.MenuUsecase
}

func NewCatalogHandler(uc *usecase.MenuUsecase) http.Handler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	items, err := h.uc.ListPublic(r.Context(), category)
	if err != nil {
		log.Printf("[catalog_handler] GET exit status=500 category=%q err=%v", category, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[catalog_handler] GET ok category=%q items=%d elapsed=%s", category, len(items), time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"items": menuItemDTOs(items),
	})
}

type menuItemDTO struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description,omitempty"`
	PriceCents            int64  `json:"priceCents"`
	PromotionalPriceCents *int64 `json:"promotionalPriceCents,omitempty"`
	EffectivePriceCents   int64  `json:"effectivePriceCents"`
	ImageURL              string `json:"imageUrl,omitempty"`
	Category              string `json:"category"`
	IsAvailable           bool   `json:"isAvailable"`
}

func menuItemDTOs(items []menudom.Item) []menuItemDTO {
	out := make([]menuItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, menuItemDTO{
			ID:                    it.ID,
			Name:                  it.Name,
			Description:           it.Description,
			PriceCents:            it.PriceCents,
			PromotionalPriceCents: it.PromotionalPriceCents,
			EffectivePriceCents:   it.EffectivePriceCents(),
			ImageURL:              it.ImageURL,
			Category:              it.Category,
			IsAvailable:           it.IsAvailable,
		})
	}
	return out
}
