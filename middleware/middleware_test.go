package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	handler := func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(body))
	}
	r.GET("/ping", handler)
	r.POST("/ping", handler)
	return r
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status codes %v", codes)
	}

	// another client has its own budget
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("second client should not be limited, got %d", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(0))
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d limited with limiting disabled", i)
		}
	}
}

func TestRateLimiterReusesBucket(t *testing.T) {
	rl := NewRateLimiter(1)
	if !rl.Allow("a") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("a") {
		t.Error("second immediate request should be limited")
	}
}

func TestVerifyWhatsAppSignature(t *testing.T) {
	secret := "app-secret"
	body := []byte(`{"object":"whatsapp_business_account"}`)
	r := newEngine(VerifyWhatsAppSignature(secret))

	tests := []struct {
		name      string
		signature string
		want      int
	}{
		{"valid", "sha256=" + calculateHMAC(body, secret), http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "sha256=" + calculateHMAC(body, "other"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ping", bytes.NewReader(body))
			if tt.signature != "" {
				req.Header.Set("X-Hub-Signature-256", tt.signature)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && w.Body.String() != string(body) {
				t.Error("body should be restored for the next handler")
			}
		})
	}
}

func TestVerifyWhatsAppSignatureWithoutSecret(t *testing.T) {
	r := newEngine(VerifyWhatsAppSignature(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/ping", bytes.NewReader([]byte("{}"))))
	if w.Code != http.StatusOK {
		t.Errorf("expected pass-through without secret, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS([]string{"http://localhost:3000"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected allowed origin header, got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for unknown origin, got %d", w.Code)
	}
}
