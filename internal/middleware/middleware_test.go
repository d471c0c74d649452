package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"charity-merch-api/internal/model"
	"charity-merch-api/internal/service"
)

type fakeVerifier struct {
	identities map[string]model.Identity
}

func (v fakeVerifier) VerifyToken(ctx context.Context, token string) (model.Identity, error) {
	ident, ok := v.identities[token]
	if !ok {
		return model.Identity{}, service.ErrInvalidToken
	}
	return ident, nil
}

func newTestRouter() (*gin.Engine, fakeVerifier) {
	gin.SetMode(gin.TestMode)
	verifier := fakeVerifier{identities: map[string]model.Identity{
		"user-token":  {ID: "u1", Name: "Somchai", Role: model.RoleUser},
		"admin-token": {ID: "a1", Name: "Staff", Role: model.RoleAdmin},
	}}

	r := gin.New()
	authed := r.Group("/", Auth(verifier))
	authed.GET("/whoami", func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity on context"})
			return
		}
		c.JSON(http.StatusOK, ident)
	})
	authed.GET("/admin-only", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, verifier
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid bearer token", header: "Bearer user-token", wantStatus: http.StatusOK},
		{name: "token without bearer prefix", header: "user-token", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newTestRouter()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{name: "admin passes", token: "admin-token", wantStatus: http.StatusOK},
		{name: "plain user rejected", token: "user-token", wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r, _ := newTestRouter()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestAdminOnlyWithoutIdentity(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/naked-admin", AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/naked-admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
