package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	profiledom "sabordigital/internal/domain/profile"
)

// FirebaseAuthClient aliases the firebase auth client so callers can hold
// the dependency as *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context keys use a private struct type to avoid collisions (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeyUID     = ctxKey{name: "uid"}
	ctxKeyEmail   = ctxKey{name: "email"}
	ctxKeyName    = ctxKey{name: "displayName"}
	ctxKeyProfile = ctxKey{name: "currentProfile"}
)

// AdminAuthMiddleware verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// against Firebase, resolves the caller's profile and requires the admin
// role before letting the request through. uid/email/displayName and the
// profile are stored in the request context.
type AdminAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
	ProfileRepo  profiledom.Repository
}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil || m.ProfileRepo == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		prof, err := m.ProfileRepo.GetByID(r.Context(), uid)
		if err != nil {
			log.Printf("[admin_auth] profile lookup failed uid=%s: %v", uid, err)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		if prof.Role != profiledom.RoleAdmin {
			http.Error(w, "forbidden: admin role required", http.StatusForbidden)
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, ctxKeyUID, uid)
		ctx = context.WithValue(ctx, ctxKeyProfile, prof)
		if prof.Email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, prof.Email)
		}
		if prof.DisplayName != "" {
			ctx = context.WithValue(ctx, ctxKeyName, prof.DisplayName)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserAuthMiddleware verifies the Firebase ID token and stores
// uid/email/displayName in context. It does NOT require a profile or a
// role: any signed-in user passes. Used by the customer-facing /me
// endpoint that feeds the checkout prefill.
type UserAuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *UserAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "user auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := claimString(token.Claims, "email")
		displayName := claimString(token.Claims, "name")

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), uid, email, displayName)))
	})
}

func claimString(claims map[string]any, key string) string {
	raw, ok := claims[key]
	if !ok {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// WithIdentity stores the verified identity in ctx. Handlers read it back
// through CurrentUID/CurrentEmail/CurrentDisplayName.
func WithIdentity(ctx context.Context, uid, email, displayName string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUID, uid)
	if email != "" {
		ctx = context.WithValue(ctx, ctxKeyEmail, email)
	}
	if displayName != "" {
		ctx = context.WithValue(ctx, ctxKeyName, displayName)
	}
	return ctx
}

// CurrentUID returns the authenticated Firebase UID, if any.
func CurrentUID(r *http.Request) (string, bool) {
	u, ok := r.Context().Value(ctxKeyUID).(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// CurrentEmail returns the authenticated email claim, if any.
func CurrentEmail(r *http.Request) string {
	e, _ := r.Context().Value(ctxKeyEmail).(string)
	return strings.TrimSpace(e)
}

// CurrentDisplayName returns the authenticated name claim, if any.
func CurrentDisplayName(r *http.Request) string {
	n, _ := r.Context().Value(ctxKeyName).(string)
	return strings.TrimSpace(n)
}

// CurrentProfile returns the authenticated profile, if any.
func CurrentProfile(r *http.Request) (profiledom.Profile, bool) {
	p, ok := r.Context().Value(ctxKeyProfile).(profiledom.Profile)
	if !ok || p.ID == "" {
		return profiledom.Profile{}, false
	}
	return p, true
}
