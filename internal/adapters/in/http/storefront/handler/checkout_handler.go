package storeHandler

import (
	"errors"
	"log"
	"net/http"
	"time"

	usecase "sabordigital/internal/application/usecase"
	"sabordigital/internal/domain/checkout"
)

// CheckoutHandler turns a cart into an order and hands back the WhatsApp
// deep link the storefront opens.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutReq struct {
	SessionID      string `json:"sessionId"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DeliveryMethod string `json:"deliveryMethod"`
	Address        string `json:"address"`
	City           string `json:"city"`
	ZipCode        string `json:"zipCode"`
	PaymentMethod  string `json:"paymentMethod"`
	Notes          string `json:"notes"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req checkoutReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	sessionID := readSessionID(r, req.SessionID)
	if sessionID == "" {
		writeErr(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	draft := checkout.Draft{
		Name:           req.Name,
		Phone:          req.Phone,
		DeliveryMethod: checkout.DeliveryMethod(req.DeliveryMethod),
		Address:        req.Address,
		City:           req.City,
		ZipCode:        req.ZipCode,
		PaymentMethod:  checkout.PaymentMethod(req.PaymentMethod),
		Notes:          req.Notes,
	}

	res, fieldErrs, err := h.uc.Submit(r.Context(), sessionID, draft)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			log.Printf("[checkout_handler] POST exit status=400 reason=empty cart sessionId=%q", sessionID)
			writeErr(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, usecase.ErrCheckoutInvalidArgument):
			writeErr(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[checkout_handler] POST exit status=500 sessionId=%q err=%v", sessionID, err)
			writeErr(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	if len(fieldErrs) > 0 {
		log.Printf("[checkout_handler] POST exit status=400 reason=validation sessionId=%q errors=%d", sessionID, len(fieldErrs))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"fieldErrors": fieldErrs,
		})
		return
	}

	log.Printf("[checkout_handler] POST ok sessionId=%q orderId=%q total=%d elapsed=%s",
		sessionID, res.OrderID, res.TotalCents, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}
