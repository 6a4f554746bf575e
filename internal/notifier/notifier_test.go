package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"CryptoSentinel/internal/model"
)

func TestFormatScanReport(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	results := []model.AnalysisResult{
		{Symbol: "BTC", Price: 64000, Change24h: 1.5, RSI: 28.1, RSISignal: model.RSIOversold,
			MACDSignal: model.MACDBullish, Histogram: 12.5, CombinedSignal: model.SignalStrongBuy},
		{Symbol: "SHIB", Price: 0.000025, Change24h: -3, RSI: 75, RSISignal: model.RSIOverbought,
			MACDSignal: model.MACDNeutral, CombinedSignal: model.SignalSell},
	}
	msg := FormatScanReport("Watchlist scan", results, at)
	for _, want := range []string{"<b>Watchlist scan</b> | 2024-05-01 08:00", "1. 🟢🟢 <b>BTC</b> Strong Buy", "$64000 (+1.50%)", "RSI: 28.10 (Oversold)", "2. 🔴 <b>SHIB</b> Sell", "$0.000025"} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatScanReport_Empty(t *testing.T) {
	msg := FormatScanReport("Scan", nil, time.Now())
	if !strings.Contains(msg, NoDataMessage) {
		t.Errorf("expected no data notice, got %s", msg)
	}
}

func TestFormatHistory(t *testing.T) {
	if msg := FormatHistory("BTC", nil); !strings.Contains(msg, "No recorded history") {
		t.Errorf("unexpected empty history message %q", msg)
	}
	msg := FormatHistory("BTC", []model.AnalysisResult{{Timestamp: "2024-05-01 08:00:00", CombinedSignal: model.SignalBuy, RSI: 41, Price: 60000}})
	if !strings.Contains(msg, "2024-05-01 08:00:00  Buy  RSI 41.00  $60000") {
		t.Errorf("unexpected history message %q", msg)
	}
}

type telegramStub struct {
	mu       sync.Mutex
	sent     []map[string]string
	failures int
}

func (s *telegramStub) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.failures > 0 {
				s.failures--
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			body, _ := io.ReadAll(r.Body)
			var payload map[string]string
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Errorf("bad payload: %v", err)
			}
			s.sent = append(s.sent, payload)
			w.Write([]byte(`{"ok":true}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":7,"message":{"text":" /popular ","chat":{"id":42}}},
				{"update_id":8,"message":{"text":"/scan BTC","chat":{"id":99}}},
				{"update_id":9}
			]}`))
		default:
			http.NotFound(w, r)
		}
	})
}

func newStubNotifier(t *testing.T, stub *telegramStub) *TelegramNotifier {
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)
	n := NewTelegramNotifier("token", "42", "")
	n.APIBase = srv.URL
	return n
}

func TestSend(t *testing.T) {
	stub := &telegramStub{}
	n := newStubNotifier(t, stub)
	if err := n.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(stub.sent) != 1 || stub.sent[0]["chat_id"] != "42" || stub.sent[0]["parse_mode"] != "HTML" {
		t.Errorf("unexpected payloads %+v", stub.sent)
	}
}

func TestSendWithRetry_RecoversAfterFailure(t *testing.T) {
	stub := &telegramStub{failures: 1}
	n := newStubNotifier(t, stub)
	if err := n.SendWithRetry(context.Background(), "hello", 2); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(stub.sent) != 1 {
		t.Errorf("expected one delivered message, got %d", len(stub.sent))
	}
}

func TestSendWithRetry_CancelledDuringBackoff(t *testing.T) {
	stub := &telegramStub{failures: 10}
	n := newStubNotifier(t, stub)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := n.SendWithRetry(ctx, "hello", 3); err == nil {
		t.Fatal("expected an error")
	}
}

func TestPollOnce_DispatchesOwnChatOnly(t *testing.T) {
	stub := &telegramStub{}
	n := newStubNotifier(t, stub)

	var commands []string
	next, err := n.pollOnce(context.Background(), n.Client, 0, 0, func(_ context.Context, cmd string) string {
		commands = append(commands, cmd)
		return "reply to " + cmd
	})
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if next != 10 {
		t.Errorf("expected next offset 10, got %d", next)
	}
	if len(commands) != 1 || commands[0] != "/popular" {
		t.Errorf("expected only /popular from chat 42, got %v", commands)
	}
	if len(stub.sent) != 1 || stub.sent[0]["text"] != "reply to /popular" {
		t.Errorf("unexpected replies %+v", stub.sent)
	}
}

func TestEnabled(t *testing.T) {
	if NewTelegramNotifier("", "", "").Enabled() {
		t.Error("expected disabled notifier without token")
	}
	if !NewTelegramNotifier("t", "1", "").Enabled() {
		t.Error("expected enabled notifier")
	}
}
