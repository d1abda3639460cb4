package storefront

import (
	"encoding/json"
	"log"
	"net/http"

	adminhandler "sabordigital/internal/adapters/in/http/admin/handler"
	"sabordigital/internal/adapters/in/http/middleware"
	storehandler "sabordigital/internal/adapters/in/http/storefront/handler"
)

// notImplemented returns a non-nil handler for endpoints whose deps are
// missing, so misconfiguration is visible instead of a nil panic.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireAdminAuth wraps handler with AdminAuthMiddleware (fail-closed).
// If the middleware is not initialized it returns 503 so the bug is obvious.
func requireAdminAuth(mw *middleware.AdminAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = notImplemented(name)
	}
	if mw == nil || mw.FirebaseAuth == nil || mw.ProfileRepo == nil {
		log.Printf("[storefront.register] ERROR: AdminAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "admin_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed, no
// role requirement). Missing Firebase auth yields 503, same as the admin
// gate.
func requireUserAuth(cont *Container, h http.Handler, name string) http.Handler {
	if h == nil {
		h = notImplemented(name)
	}
	var fbAuth *middleware.FirebaseAuthClient
	if cont.Infra != nil {
		fbAuth = cont.Infra.FirebaseAuth
	}
	if fbAuth == nil {
		log.Printf("[storefront.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	mw := &middleware.UserAuthMiddleware{FirebaseAuth: fbAuth}
	return mw.Handler(h)
}

// Register registers all storefront and admin routes onto mux.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	// ------------------------------------------------------------
	// Public storefront
	// ------------------------------------------------------------
	catalogH := notImplemented("Catalog")
	if cont.MenuUC != nil {
		catalogH = storehandler.NewCatalogHandler(cont.MenuUC)
	}
	themeH := notImplemented("Theme")
	if cont.ThemeUC != nil {
		themeH = storehandler.NewThemeHandler(cont.ThemeUC)
	}
	cartH := notImplemented("Cart")
	if cont.CartUC != nil {
		cartH = storehandler.NewCartHandler(cont.CartUC)
	}
	checkoutH := notImplemented("Checkout")
	if cont.CheckoutUC != nil {
		checkoutH = storehandler.NewCheckoutHandler(cont.CheckoutUC)
	}

	mux.Handle("/menu", catalogH)
	mux.Handle("/theme", themeH)
	mux.Handle("/cart", cartH)
	mux.Handle("/cart/", cartH)
	mux.Handle("/checkout", checkoutH)

	// /me needs a signed-in user (any role): it feeds the checkout prefill.
	meH := notImplemented("Me")
	if cont.ProfileUC != nil {
		meH = storehandler.NewProfileHandler(cont.ProfileUC)
	}
	mux.Handle("/me", requireUserAuth(cont, meH, "Me"))

	// ------------------------------------------------------------
	// Admin (Firebase auth + admin role)
	// ------------------------------------------------------------
	adminMW := &middleware.AdminAuthMiddleware{
		ProfileRepo: cont.ProfileRepo,
	}
	if cont.Infra != nil {
		adminMW.FirebaseAuth = cont.Infra.FirebaseAuth
	}
	if adminMW.FirebaseAuth == nil || adminMW.ProfileRepo == nil {
		log.Printf("[storefront.register] WARN: admin auth incomplete (firebaseAuth=%t profileRepo=%t); admin endpoints will return 503",
			adminMW.FirebaseAuth != nil, adminMW.ProfileRepo != nil)
	}

	menuAdminH := notImplemented("AdminMenu")
	if cont.MenuUC != nil {
		menuAdminH = adminhandler.NewMenuAdminHandler(cont.MenuUC, cont.Uploader)
	}
	orderAdminH := notImplemented("AdminOrders")
	if cont.OrderUC != nil {
		orderAdminH = adminhandler.NewOrderAdminHandler(cont.OrderUC)
	}
	themeAdminH := notImplemented("AdminTheme")
	if cont.ThemeUC != nil {
		themeAdminH = adminhandler.NewThemeAdminHandler(cont.ThemeUC)
	}
	dashboardH := notImplemented("AdminDashboard")
	if cont.OrderUC != nil {
		dashboardH = adminhandler.NewDashboardHandler(cont.OrderUC)
	}

	mux.Handle("/admin/menu", requireAdminAuth(adminMW, menuAdminH, "AdminMenu"))
	mux.Handle("/admin/menu/", requireAdminAuth(adminMW, menuAdminH, "AdminMenu"))
	mux.Handle("/admin/orders", requireAdminAuth(adminMW, orderAdminH, "AdminOrders"))
	mux.Handle("/admin/orders/", requireAdminAuth(adminMW, orderAdminH, "AdminOrders"))
	mux.Handle("/admin/theme", requireAdminAuth(adminMW, themeAdminH, "AdminTheme"))
	mux.Handle("/admin/dashboard", requireAdminAuth(adminMW, dashboardH, "AdminDashboard"))

	log.Printf("[storefront.register] routes registered (catalog=%t theme=%t cart=%t checkout=%t admin=%t)",
		cont.MenuUC != nil, cont.ThemeUC != nil, cont.CartUC != nil, cont.CheckoutUC != nil,
		adminMW.FirebaseAuth != nil && adminMW.ProfileRepo != nil)
}
