package store

import (
	"context"
	"testing"

	"github.com/GabrielSilvaSI/Rice/core"
)

func TestMemoryStore_MoviesRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	err := st.PutMovies(ctx, []*core.Movie{
		{ID: "M2", Title: "Second"},
		{ID: "M1", Title: "First"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	movies, err := st.ListMovies(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(movies) != 2 || movies[0].ID != "M1" || movies[1].ID != "M2" {
		t.Errorf("list not sorted by id: %v", movies)
	}

	mv, err := st.GetMovie(ctx, "M1")
	if err != nil || mv.Title != "First" {
		t.Errorf("get M1 = %v, %v", mv, err)
	}
	if _, err := st.GetMovie(ctx, "GONE"); !core.IsStoreNotFound(err) {
		t.Errorf("missing movie should yield not-found, got %v", err)
	}
}

func TestMemoryStore_PutMoviesUpserts(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_ = st.PutMovies(ctx, []*core.Movie{{ID: "M1", Title: "Old"}})
	_ = st.PutMovies(ctx, []*core.Movie{{ID: "M1", Title: "New"}})

	mv, _ := st.GetMovie(ctx, "M1")
	if mv.Title != "New" {
		t.Errorf("reimport should replace movie, got title %q", mv.Title)
	}
	movies, _ := st.ListMovies(ctx)
	if len(movies) != 1 {
		t.Errorf("upsert must not duplicate, got %d movies", len(movies))
	}
}

func TestMemoryStore_RatingLastWriteWins(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_ = st.PutRating(ctx, &core.Rating{UserID: "u1", MovieID: "M1", Liked: true})
	_ = st.PutRating(ctx, &core.Rating{UserID: "u1", MovieID: "M1", Liked: false})

	ratings, err := st.ListRatings(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("re-rating must replace, got %d rows", len(ratings))
	}
	if ratings[0].Liked {
		t.Errorf("effective rating should be the last write (disliked)")
	}
}

func TestMemoryStore_RatingValidation(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	tests := []*core.Rating{
		nil,
		{MovieID: "M1", Liked: true},
		{UserID: "u1", Liked: true},
	}
	for _, r := range tests {
		if err := st.PutRating(ctx, r); !core.IsInvalidInput(err) {
			t.Errorf("PutRating(%+v) err = %v, want invalid input", r, err)
		}
	}
}

func TestMemoryStore_RatingsIsolatedPerUser(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_ = st.PutRating(ctx, &core.Rating{UserID: "u1", MovieID: "M1", Liked: true})
	_ = st.PutRating(ctx, &core.Rating{UserID: "u2", MovieID: "M2", Liked: true})

	r1, _ := st.ListRatings(ctx, "u1")
	if len(r1) != 1 || r1[0].MovieID != "M1" {
		t.Errorf("u1 ratings = %v, want only M1", r1)
	}
	none, _ := st.ListRatings(ctx, "nobody")
	if len(none) != 0 {
		t.Errorf("unknown user should have no ratings")
	}
}

func TestMemoryStore_Users(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.PutUser(ctx, &core.User{ID: "u1", Name: "Alice"}); err != nil {
		t.Fatalf("put user: %v", err)
	}
	if err := st.PutUser(ctx, &core.User{}); !core.IsInvalidInput(err) {
		t.Errorf("user without id should be rejected, got %v", err)
	}

	u, err := st.GetUser(ctx, "u1")
	if err != nil || u.Name != "Alice" {
		t.Errorf("get user = %v, %v", u, err)
	}
	if _, err := st.GetUser(ctx, "GONE"); !core.IsStoreNotFound(err) {
		t.Errorf("missing user should yield not-found, got %v", err)
	}

	_ = st.PutUser(ctx, &core.User{ID: "u0", Name: "Bob"})
	users, _ := st.ListUsers(ctx)
	if len(users) != 2 || users[0].ID != "u0" {
		t.Errorf("users not sorted by id: %v", users)
	}
}
