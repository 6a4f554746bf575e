package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/recorder"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubScanner struct {
	gotSymbols []string
	gotPeriod  int
	results    []model.AnalysisResult
	err        error
}

func (s *stubScanner) Scan(_ context.Context, symbols []string, period int) ([]model.AnalysisResult, error) {
	s.gotSymbols = symbols
	s.gotPeriod = period
	return s.results, s.err
}

type stubRecorder struct {
	recorder.NoopRecorder
	scans []*recorder.ScanRecord
}

func (r *stubRecorder) RecordScan(rec *recorder.ScanRecord) error {
	r.scans = append(r.scans, rec)
	return nil
}

func do(t *testing.T, h *Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.NewEngine().ServeHTTP(w, req)
	return w
}

func TestScanSuccess(t *testing.T) {
	sc := &stubScanner{results: []model.AnalysisResult{{Symbol: "BTC", RSI: 25.5, CombinedSignal: model.SignalStrongBuy}}}
	rec := &stubRecorder{}
	h := New(sc, rec, "mock", nil)

	w := do(t, h, http.MethodPost, "/api/scan", `{"symbols":["btc"," eth ","btc"],"rsi_period":21}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Results []model.AnalysisResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].CombinedSignal != model.SignalStrongBuy {
		t.Errorf("unexpected results %+v", resp.Results)
	}
	if strings.Join(sc.gotSymbols, ",") != "BTC,ETH" || sc.gotPeriod != 21 {
		t.Errorf("unexpected scan args %v/%d", sc.gotSymbols, sc.gotPeriod)
	}
	if len(rec.scans) != 1 || rec.scans[0].Source != "api" {
		t.Errorf("expected scan to be recorded, got %+v", rec.scans)
	}
}

func TestScanDefaultsPeriod(t *testing.T) {
	sc := &stubScanner{}
	h := New(sc, nil, "mock", nil)
	w := do(t, h, http.MethodPost, "/api/scan", `{"symbols":["BTC"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if sc.gotPeriod != 14 {
		t.Errorf("expected default period 14, got %d", sc.gotPeriod)
	}
	if !strings.Contains(w.Body.String(), `"results":[]`) {
		t.Errorf("expected empty results array, got %s", w.Body.String())
	}
}

func TestScanBadRequests(t *testing.T) {
	h := New(&stubScanner{}, nil, "mock", nil)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no symbols", `{"symbols":[]}`, "No symbols provided"},
		{"blank symbols", `{"symbols":["  "]}`, "No symbols provided"},
		{"bad json", `{"symbols":`, "Invalid input"},
		{"tiny period", `{"symbols":["BTC"],"rsi_period":1}`, "rsi_period"},
	}
	for _, tt := range tests {
		w := do(t, h, http.MethodPost, "/api/scan", tt.body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.name, w.Code)
		}
		if !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%s: expected body containing %q, got %s", tt.name, tt.want, w.Body.String())
		}
	}
}

func TestScanSystemicFailure(t *testing.T) {
	h := New(&stubScanner{err: errors.New("scan aborted: context deadline exceeded")}, nil, "mock", nil)
	w := do(t, h, http.MethodPost, "/api/scan", `{"symbols":["BTC"]}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestPopular(t *testing.T) {
	sc := &stubScanner{}
	h := New(sc, nil, "mock", []string{"BTC", "ETH", "LINK", "XRP", "SOL"})
	w := do(t, h, http.MethodGet, "/api/popular", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(sc.gotSymbols) != 5 || sc.gotPeriod != 14 {
		t.Errorf("unexpected scan args %v/%d", sc.gotSymbols, sc.gotPeriod)
	}
}

func TestHealthAndHistory(t *testing.T) {
	h := New(&stubScanner{}, nil, "coingecko", nil)
	w := do(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"source":"coingecko"`) {
		t.Errorf("unexpected health response %d %s", w.Code, w.Body.String())
	}
	w = do(t, h, http.MethodGet, "/api/history/BTC", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"results":[]`) {
		t.Errorf("unexpected history response %d %s", w.Code, w.Body.String())
	}
}
