package feature

import (
	"reflect"
	"testing"

	"github.com/GabrielSilvaSI/Rice/core"
)

func TestAtomicToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Christopher Nolan", "christopher_nolan"},
		{"  Heath   Ledger ", "heath_ledger"},
		{"Action", "action"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := AtomicToken(tt.in); got != tt.want {
			t.Errorf("AtomicToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokens_MultiWordEntitiesStayAtomic(t *testing.T) {
	mv := &core.Movie{
		ID:       "1",
		Genres:   []string{"Sci-Fi"},
		Director: "Christopher Nolan",
		Cast:     []string{"Christian Bale"},
		Synopsis: "a hero saves the city",
	}
	tokens := Tokens(mv)

	// 人名必须是单一 token，不能按空白拆开
	for _, tok := range tokens {
		if tok == "christopher" || tok == "nolan" || tok == "christian" || tok == "bale" {
			t.Fatalf("name was split into bare token %q: %v", tok, tokens)
		}
	}
	if !contains(tokens, "christopher_nolan") {
		t.Errorf("expected atomic director token, got %v", tokens)
	}
	if !contains(tokens, "christian_bale") {
		t.Errorf("expected atomic actor token, got %v", tokens)
	}
}

func TestTokens_FieldWeighting(t *testing.T) {
	mv := &core.Movie{ID: "1", Genres: []string{"Action"}, Director: "Jane Doe"}
	tokens := Tokens(mv)

	if got := count(tokens, "action"); got != GenreWeight {
		t.Errorf("genre token repeated %d times, want %d", got, GenreWeight)
	}
	if got := count(tokens, "jane_doe"); got != DirectorWeight {
		t.Errorf("director token repeated %d times, want %d", got, DirectorWeight)
	}
}

func TestTokens_CastTruncatedToPrincipals(t *testing.T) {
	mv := &core.Movie{
		ID:   "1",
		Cast: []string{"A One", "B Two", "C Three", "D Four", "E Five", "F Six"},
	}
	tokens := Tokens(mv)
	if contains(tokens, "e_five") || contains(tokens, "f_six") {
		t.Errorf("cast beyond top %d should not contribute tokens: %v", core.MaxPrincipalCast, tokens)
	}
	if !contains(tokens, "d_four") {
		t.Errorf("principal cast missing: %v", tokens)
	}
}

func TestTokens_EmptyMovie(t *testing.T) {
	if got := Tokens(&core.Movie{ID: "1"}); len(got) != 0 {
		t.Errorf("empty movie should yield no tokens, got %v", got)
	}
	if got := Tokens(nil); got != nil {
		t.Errorf("nil movie should yield nil, got %v", got)
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("A thief, who steals secrets!")
	want := []string{"a", "thief", "who", "steals", "secrets"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenize_AccentedWordsStayWhole(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Amélie vive em ação", []string{"amélie", "vive", "em", "ação"}},
		{"Amélie, em Paris!", []string{"amélie", "em", "paris"}},
		{"CORAÇÃO valente", []string{"coração", "valente"}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

func count(s []string, v string) int {
	n := 0
	for _, e := range s {
		if e == v {
			n++
		}
	}
	return n
}
