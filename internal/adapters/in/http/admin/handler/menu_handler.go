package adminHandler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "sabordigital/internal/application/usecase"
	menudom "sabordigital/internal/domain/menu"
)

// ImageUploader abstracts media storage for menu item photos. Delete takes
// the public URL Upload handed out; unknown URLs are a no-op.
type ImageUploader interface {
	Upload(ctx context.Context, fileName, contentType string, body io.Reader) (string, int64, error)
	Delete(ctx context.Context, publicURL string) error
}

// MenuAdminHandler serves the admin menu CRUD plus image upload.
type MenuAdminHandler struct {
	uc       *usecase.MenuUsecase
	uploader ImageUploader // optional
}

func NewMenuAdminHandler(uc *usecase.MenuUsecase, uploader ImageUploader) http.Handler {
	return &MenuAdminHandler{uc: uc, uploader: uploader}
}

func (h *MenuAdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "menu handler is not configured")
		return
	}

	parts := pathParts(path, "/admin/menu")
	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r, start)
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r, start)
	case len(parts) == 1 && parts[0] == "images" && r.Method == http.MethodPost:
		h.handleUploadImage(w, r, start)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodPut:
		h.handleUpdate(w, r, parts[0], start)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleDelete(w, r, parts[0], start)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *MenuAdminHandler) handleList(w http.ResponseWriter, r *http.Request, start time.Time) {
	items, err := h.uc.ListAll(r.Context())
	if err != nil {
		log.Printf("[admin_menu_handler] GET exit status=500 err=%v", err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	log.Printf("[admin_menu_handler] GET ok items=%d elapsed=%s", len(items), time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *MenuAdminHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	it, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

type menuItemReq struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	PriceCents            *int64 `json:"priceCents"`
	PromotionalPriceCents *int64 `json:"promotionalPriceCents"`
	ImageURL              string `json:"imageUrl"`
	Category              string `json:"category"`
	IsAvailable           *bool  `json:"isAvailable"`
}

func (h *MenuAdminHandler) handleCreate(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req menuItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.PriceCents == nil {
		writeErr(w, http.StatusBadRequest, "priceCents is required")
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	it, err := h.uc.Create(r.Context(), req.Name, req.Description, *req.PriceCents, req.ImageURL, req.Category, available)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	if req.PromotionalPriceCents != nil {
		it, err = h.uc.Update(r.Context(), it.ID, menudom.Patch{PromotionalPriceCents: req.PromotionalPriceCents})
		if err != nil {
			h.writeUCErr(w, err)
			return
		}
	}

	log.Printf("[admin_menu_handler] POST create ok id=%q name=%q elapsed=%s", it.ID, it.Name, time.Since(start))
	writeJSON(w, http.StatusCreated, it)
}

func (h *MenuAdminHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id string, start time.Time) {
	var req menuItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	p := menudom.Patch{
		PriceCents:            req.PriceCents,
		PromotionalPriceCents: req.PromotionalPriceCents,
		IsAvailable:           req.IsAvailable,
	}
	if s := strings.TrimSpace(req.Name); s != "" {
		p.Name = &s
	}
	if s := strings.TrimSpace(req.Description); s != "" {
		p.Description = &s
	}
	if s := strings.TrimSpace(req.ImageURL); s != "" {
		p.ImageURL = &s
	}
	if s := strings.TrimSpace(req.Category); s != "" {
		p.Category = &s
	}

	it, err := h.uc.Update(r.Context(), id, p)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}

	log.Printf("[admin_menu_handler] PUT update ok id=%q elapsed=%s", id, time.Since(start))
	writeJSON(w, http.StatusOK, it)
}

func (h *MenuAdminHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string, start time.Time) {
	it, err := h.uc.Get(r.Context(), id)
	if err != nil {
		h.writeUCErr(w, err)
		return
	}
	if err := h.uc.Delete(r.Context(), id); err != nil {
		h.writeUCErr(w, err)
		return
	}

	// best-effort media cleanup; the item is already gone
	if h.uploader != nil && it.ImageURL != "" {
		if err := h.uploader.Delete(r.Context(), it.ImageURL); err != nil {
			log.Printf("[admin_menu_handler] WARN: image cleanup failed id=%q url=%q err=%v", id, it.ImageURL, err)
		}
	}

	log.Printf("[admin_menu_handler] DELETE ok id=%q elapsed=%s", id, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// handleUploadImage accepts multipart/form-data with a "file" part and
// returns the public URL to embed in a menu item.
func (h *MenuAdminHandler) handleUploadImage(w http.ResponseWriter, r *http.Request, start time.Time) {
	if h.uploader == nil {
		writeErr(w, http.StatusServiceUnavailable, "media storage is not configured")
		return
	}

	// 10MB cap, matching the largest photo the storefront renders
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	url, size, err := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		log.Printf("[admin_menu_handler] POST image exit status=500 file=%q err=%v", header.Filename, err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[admin_menu_handler] POST image ok file=%q size=%d elapsed=%s", header.Filename, size, time.Since(start))
	writeJSON(w, http.StatusCreated, map[string]any{
		"url":  url,
		"size": size,
	})
}

func (h *MenuAdminHandler) writeUCErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		writeErr(w, http.StatusInternalServerError, "unknown error")
	case errors.Is(err, menudom.ErrNotFound):
		writeErr(w, http.StatusNotFound, "menu item not found")
	case errors.Is(err, usecase.ErrMenuInvalidArgument), errors.Is(err, menudom.ErrInvalidItem):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}
