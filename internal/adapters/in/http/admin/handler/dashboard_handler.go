package adminHandler

import (
	"log"
	"net/http"
	"time"

	usecase "sabordigital/internal/application/usecase"
)

// DashboardHandler returns the numbers the admin home screen renders.
type DashboardHandler struct {
	uc *usecase.OrderUsecase
}

func NewDashboardHandler(uc *usecase.OrderUsecase) http.Handler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "dashboard handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sum, err := h.uc.Dashboard(r.Context())
	if err != nil {
		log.Printf("[dashboard_handler] GET exit status=500 err=%v", err)
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("[dashboard_handler] GET ok todayOrders=%d elapsed=%s", sum.TodayOrders, time.Since(start))
	writeJSON(w, http.StatusOK, sum)
}
