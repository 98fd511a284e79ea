package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"fnol_intake/internal/adapter/http/middleware"
	"fnol_intake/internal/domain/entities"
	"fnol_intake/pkg"

	"github.com/gin-gonic/gin"
)

var (
	client = entities.Identity{UserID: "user-1", Name: "Jane Roe", Email: "jane@example.com", Role: entities.RoleClient}
	admin  = entities.Identity{UserID: "admin-1", Name: "Admin", Email: "admin@fnolpro.com", Role: entities.RoleAdmin}
	anon   = entities.Identity{}
)

// newRouter returns a test engine whose requests run as id.
func newRouter(id entities.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id.IsAuthenticated() {
			middleware.SetIdentity(c, id)
		}
		c.Next()
	})
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var e pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return e
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d (%s)", want, w.Code, w.Body.String())
	}
}
