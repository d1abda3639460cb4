package storeHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usecase "sabordigital/internal/application/usecase"
	cartdom "sabordigital/internal/domain/cart"
)

type memCartRepo struct {
	carts map[string]*cartdom.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]*cartdom.Cart{}}
}

func (m *memCartRepo) GetBySessionID(_ context.Context, sessionID string) (*cartdom.Cart, error) {
	return m.carts[sessionID], nil
}

func (m *memCartRepo) Upsert(_ context.Context, c *cartdom.Cart) error {
	m.carts[c.ID] = c
	return nil
}

func (m *memCartRepo) DeleteBySessionID(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func newCartServer(t *testing.T) (http.Handler, *memCartRepo) {
	t.Helper()
	repo := newMemCartRepo()
	return NewCartHandler(usecase.NewCartUsecase(repo)), repo
}

func doJSON(t *testing.T, h http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCartHandler_GetUnknownSessionReturnsEmptyCart(t *testing.T) {
	h, _ := newCartServer(t)

	rec := doJSON(t, h, http.MethodGet, "/cart", "sess-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(0), body["totalItems"])
	assert.Empty(t, body["items"])
}

func TestCartHandler_AddItemMergesByMenuItem(t *testing.T) {
	h, _ := newCartServer(t)

	add := map[string]any{
		"menuItemId": "item-1",
		"name":       "Picanha Grelhada",
		"priceCents": 2000,
		"quantity":   1,
	}
	rec := doJSON(t, h, http.MethodPost, "/cart/items", "sess-1", add)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "added", decodeBody(t, rec)["outcome"])

	rec = doJSON(t, h, http.MethodPost, "/cart/items", "sess-1", add)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "updated", body["outcome"])
	assert.Equal(t, float64(2), body["totalItems"])
	assert.Equal(t, float64(4000), body["totalCents"])
	assert.Len(t, body["items"], 1)
}

func TestCartHandler_AddItemRejectsBadQuantity(t *testing.T) {
	h, _ := newCartServer(t)

	rec := doJSON(t, h, http.MethodPost, "/cart/items", "sess-1", map[string]any{
		"menuItemId": "item-1",
		"name":       "Picanha Grelhada",
		"priceCents": 2000,
		"quantity":   0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_MissingSessionIsBadRequest(t *testing.T) {
	h, _ := newCartServer(t)

	rec := doJSON(t, h, http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_SessionFromQueryParam(t *testing.T) {
	h, _ := newCartServer(t)

	rec := doJSON(t, h, http.MethodGet, "/cart?sessionId=sess-q", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartHandler_RemoveAndClear(t *testing.T) {
	h, repo := newCartServer(t)

	rec := doJSON(t, h, http.MethodPost, "/cart/items", "sess-1", map[string]any{
		"menuItemId": "item-1",
		"name":       "Picanha Grelhada",
		"priceCents": 2000,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var lineID string
	if items, ok := decodeBody(t, rec)["items"].([]any); ok && len(items) == 1 {
		lineID, _ = items[0].(map[string]any)["id"].(string)
	}
	require.NotEmpty(t, lineID)

	rec = doJSON(t, h, http.MethodDelete, "/cart/items", "sess-1", map[string]any{"lineId": lineID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["totalItems"])

	rec = doJSON(t, h, http.MethodDelete, "/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, repo.carts["sess-1"].Items)
}

func TestCartHandler_UnknownRouteIs404(t *testing.T) {
	h, _ := newCartServer(t)

	rec := doJSON(t, h, http.MethodPatch, "/cart", "sess-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
