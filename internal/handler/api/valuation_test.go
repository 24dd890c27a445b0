package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	applogger "marketcycle/pkg/logger"

	"github.com/labstack/echo/v4"
)

func classifyRequest(t *testing.T, h *ValuationHandler) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/classify?ratio=18", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Classify(c); err != nil {
		t.Fatalf("classify: %v", err)
	}
	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body.Status
}

func TestClassifyRateLimitFromConfig(t *testing.T) {
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewValuationHandler(log, nil, nil, nil, 1, 5, nil)

	if got := classifyRequest(t, h); got != http.StatusOK {
		t.Fatalf("first request should pass, got status %d", got)
	}
	if got := classifyRequest(t, h); got != http.StatusTooManyRequests {
		t.Fatalf("bucket of one should reject the second request, got status %d", got)
	}
}

func TestClassifyRateLimitDefaults(t *testing.T) {
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	h := NewValuationHandler(log, nil, nil, nil, 0, 0, nil)
	if h.rlCapacity != 10 || h.rlRefill != 5 {
		t.Fatalf("non-positive settings should fall back to 10/5, got %v/%v", h.rlCapacity, h.rlRefill)
	}
}
