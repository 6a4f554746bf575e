package strategy

import (
	"testing"

	"CryptoSentinel/internal/model"
)

func result(symbol string, sig model.CombinedSignal, rsi float64) model.AnalysisResult {
	return model.AnalysisResult{Symbol: symbol, CombinedSignal: sig, RSI: rsi}
}

func TestRank_PriorityThenRSI(t *testing.T) {
	in := []model.AnalysisResult{
		result("A", model.SignalHold, 50),
		result("B", model.SignalStrongBuy, 20),
		result("C", model.SignalStrongBuy, 10),
	}
	got := Rank(in)
	want := []string{"C", "B", "A"}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("position %d: expected %s, got %s", i, sym, got[i].Symbol)
		}
	}
	if in[0].Symbol != "A" {
		t.Error("Rank must not reorder its input")
	}
}

func TestRank_AllBuckets(t *testing.T) {
	in := []model.AnalysisResult{
		result("UNK", model.CombinedSignal("Maybe"), 1),
		result("SS", model.SignalStrongSell, 90),
		result("S", model.SignalSell, 75),
		result("H", model.SignalHold, 40),
		result("B2", model.SignalBuy, 45),
		result("B1", model.SignalBuy, 28),
		result("SB", model.SignalStrongBuy, 22),
	}
	got := Rank(in)
	want := []string{"SB", "B1", "B2", "H", "S", "SS", "UNK"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("position %d: expected %s, got %s", i, sym, got[i].Symbol)
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	in := []model.AnalysisResult{
		result("X", model.SignalSell, 60),
		result("Y", model.SignalSell, 60),
		result("Z", model.SignalSell, 60),
	}
	got := Rank(in)
	for i, sym := range []string{"X", "Y", "Z"} {
		if got[i].Symbol != sym {
			t.Errorf("position %d: expected %s, got %s", i, sym, got[i].Symbol)
		}
	}
}

func TestPriority_Unknown(t *testing.T) {
	if p := Priority(""); p != 6 {
		t.Errorf("expected 6 for unknown signal, got %d", p)
	}
	if p := Priority(model.SignalHold); p != 3 {
		t.Errorf("expected 3 for Hold, got %d", p)
	}
}
