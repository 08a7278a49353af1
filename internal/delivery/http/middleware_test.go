package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"http://localhost:3000", "https://*"}

	tests := []struct {
		origin string
		want   bool
	}{
		{"http://localhost:3000", true},
		{"https://app.stylelens.example.com", true},
		{"http://evil.example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
			t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	router.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generates an id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/x", nil)
		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
	})

	t.Run("echoes an incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/x", nil)
		req.Header.Set("X-Request-ID", "client-chosen-id")
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "client-chosen-id" {
			t.Errorf("X-Request-ID = %q, want echoed id", got)
		}
	})
}
