package eval

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEvaluate_ConfusionCounts(t *testing.T) {
	// 目录 3 部：推荐 {M1, M2}，喜欢 {M1, M3}
	// M1 推荐且喜欢 → TP；M2 推荐不喜欢 → FP；M3 喜欢没推荐 → FN
	r := Evaluate([]string{"M1", "M2"}, []string{"M1", "M3"}, []string{"M1", "M2", "M3"})

	if r.TP != 1 || r.FP != 1 || r.FN != 1 || r.TN != 0 {
		t.Fatalf("matrix = %+v, want TP=1 FP=1 FN=1 TN=0", r.ConfusionMatrix)
	}
	if !almostEqual(r.Precision, 0.5) || !almostEqual(r.Recall, 0.5) || !almostEqual(r.F1, 0.5) {
		t.Errorf("p/r/f1 = %v/%v/%v, want 0.5/0.5/0.5", r.Precision, r.Recall, r.F1)
	}
	if r.EmptyGroundTruth || r.EmptyRecommendations {
		t.Errorf("degenerate flags must be false: %+v", r)
	}
}

func TestEvaluate_CountsSumToCatalogSize(t *testing.T) {
	all := []string{"M1", "M2", "M3", "M4", "M5"}
	r := Evaluate([]string{"M2", "M4"}, []string{"M1", "M2"}, all)
	if r.Total() != len(all) {
		t.Errorf("Total() = %d, want %d (every movie falls in exactly one cell)", r.Total(), len(all))
	}
}

func TestEvaluate_EmptyGroundTruth(t *testing.T) {
	r := Evaluate([]string{"M1"}, nil, []string{"M1", "M2"})
	if !r.EmptyGroundTruth {
		t.Errorf("no liked movies should set EmptyGroundTruth")
	}
	if r.Recall != 0 || r.F1 != 0 {
		t.Errorf("degenerate recall/f1 must be 0, got %v/%v", r.Recall, r.F1)
	}
	if r.TP != 0 || r.FP != 1 {
		t.Errorf("matrix = %+v, want TP=0 FP=1", r.ConfusionMatrix)
	}
}

func TestEvaluate_EmptyRecommendations(t *testing.T) {
	r := Evaluate(nil, []string{"M1"}, []string{"M1", "M2"})
	if !r.EmptyRecommendations {
		t.Errorf("empty list should set EmptyRecommendations")
	}
	if r.Precision != 0 {
		t.Errorf("degenerate precision must be 0, got %v", r.Precision)
	}
	if r.FN != 1 || r.TN != 1 {
		t.Errorf("matrix = %+v, want FN=1 TN=1", r.ConfusionMatrix)
	}
}

func TestEvaluate_StaleIDsIgnored(t *testing.T) {
	// GONE 不在宇宙中：任何一格都不计数
	r := Evaluate([]string{"M1", "GONE"}, []string{"M1", "GONE"}, []string{"M1", "M2"})
	if r.Total() != 2 {
		t.Errorf("Total() = %d, want 2 (stale ids outside universe)", r.Total())
	}
	if r.TP != 1 {
		t.Errorf("TP = %d, want 1", r.TP)
	}
}

func TestEvaluate_PureFunction(t *testing.T) {
	rec := []string{"M1", "M2"}
	liked := []string{"M2", "M3"}
	all := []string{"M1", "M2", "M3", "M4"}
	a := Evaluate(rec, liked, all)
	b := Evaluate(rec, liked, all)
	if a != b {
		t.Errorf("same inputs must yield identical reports: %+v vs %+v", a, b)
	}
}

func TestEvaluate_DuplicateUniverseIDs(t *testing.T) {
	r := Evaluate([]string{"M1"}, []string{"M1"}, []string{"M1", "M1", "M2"})
	if r.Total() != 2 {
		t.Errorf("duplicate catalog ids must be counted once, Total() = %d", r.Total())
	}
}
