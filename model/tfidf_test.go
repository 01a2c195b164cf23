package model

import (
	"math"
	"reflect"
	"testing"

	"github.com/GabrielSilvaSI/Rice/core"
)

func testCatalog() []*core.Movie {
	return []*core.Movie{
		{ID: "M1", Title: "Movie 1", Synopsis: "action hero fights crime"},
		{ID: "M2", Title: "Movie 2", Synopsis: "romantic drama love story"},
		{ID: "M3", Title: "Movie 3", Synopsis: "action hero saves city"},
	}
}

func TestFitTFIDF_Deterministic(t *testing.T) {
	a := FitTFIDF(testCatalog())
	b := FitTFIDF(testCatalog())

	if !reflect.DeepEqual(a.Vocabulary, b.Vocabulary) {
		t.Errorf("vocabularies differ between identical fits")
	}
	if !reflect.DeepEqual(a.IDs, b.IDs) {
		t.Errorf("row order differs between identical fits")
	}
	if !reflect.DeepEqual(a.Rows, b.Rows) {
		t.Errorf("weight rows differ between identical fits")
	}
	if !reflect.DeepEqual(a.IDF, b.IDF) {
		t.Errorf("idf tables differ between identical fits")
	}
}

func TestFitTFIDF_RowOrderMatchesInput(t *testing.T) {
	m := FitTFIDF(testCatalog())
	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3", m.Len())
	}
	want := []string{"M1", "M2", "M3"}
	if !reflect.DeepEqual(m.IDs, want) {
		t.Errorf("IDs = %v, want %v", m.IDs, want)
	}
	for i, id := range want {
		row, ok := m.Row(id)
		if !ok {
			t.Fatalf("missing row for %s", id)
		}
		if !reflect.DeepEqual(row, m.Rows[i]) {
			t.Errorf("Row(%s) does not match Rows[%d]", id, i)
		}
	}
}

func TestFitTFIDF_RowsAreL2Normalized(t *testing.T) {
	m := FitTFIDF(testCatalog())
	for i, row := range m.Rows {
		norm := row.Norm()
		if math.Abs(norm-1) > 1e-9 {
			t.Errorf("row %d norm = %v, want 1", i, norm)
		}
	}
}

func TestFitTFIDF_EmptyCorpus(t *testing.T) {
	m := FitTFIDF(nil)
	if m.Len() != 0 || m.VocabSize() != 0 {
		t.Errorf("empty corpus should yield empty model, got %d rows %d terms", m.Len(), m.VocabSize())
	}
}

func TestFitTFIDF_SingleDocumentCorpus(t *testing.T) {
	m := FitTFIDF([]*core.Movie{{ID: "M1", Synopsis: "lonely movie"}})
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	// 语料只有一篇文档时 IDF 必须有限
	for term, idf := range m.IDF {
		if math.IsInf(idf, 0) || math.IsNaN(idf) {
			t.Errorf("idf for %q is not finite: %v", term, idf)
		}
	}
	row, _ := m.Row("M1")
	if len(row) == 0 {
		t.Errorf("single document should still get a nonzero vector")
	}
}

func TestFitTFIDF_EmptyDocumentYieldsZeroVector(t *testing.T) {
	m := FitTFIDF([]*core.Movie{
		{ID: "M1", Synopsis: "action hero"},
		{ID: "M2"}, // 没有任何内容
	})
	row, ok := m.Row("M2")
	if !ok {
		t.Fatalf("empty movie must still have a row")
	}
	if row.Norm() != 0 {
		t.Errorf("empty document should yield zero vector, norm = %v", row.Norm())
	}
}

func TestFitTFIDF_RareTermsWeighHigher(t *testing.T) {
	m := FitTFIDF(testCatalog())
	// "action" 出现在两篇文档，"crime" 只出现在一篇：crime 的 IDF 更大
	if m.IDF["crime"] <= m.IDF["action"] {
		t.Errorf("idf(crime)=%v should exceed idf(action)=%v", m.IDF["crime"], m.IDF["action"])
	}
}

func TestVector_DotAndCosine(t *testing.T) {
	a := Vector{"x": 3, "y": 4}
	b := Vector{"x": 3, "y": 4}
	c := Vector{"z": 1}

	if got := Cosine(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("cosine of identical vectors = %v, want 1", got)
	}
	if got := Cosine(a, c); got != 0 {
		t.Errorf("cosine of orthogonal vectors = %v, want 0", got)
	}
	if got := Cosine(a, Vector{}); got != 0 {
		t.Errorf("cosine against zero vector = %v, want 0", got)
	}

	a.Normalize()
	if math.Abs(a.Norm()-1) > 1e-9 {
		t.Errorf("normalized norm = %v, want 1", a.Norm())
	}
}
