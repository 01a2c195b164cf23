package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GabrielSilvaSI/Rice/core"
)

// recommendRequest 是 POST /api/v1/recommend 的请求体。
// 动态 payload 在边界处换成显式类型，校验后才进入纯引擎函数。
type recommendRequest struct {
	UserID string `json:"user_id"`
	N      int    `json:"num_recommendations"`
}

type recommendItem struct {
	MovieID    string  `json:"movie_id"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	PosterLink string  `json:"poster_link,omitempty"`
}

type recommendResponse struct {
	UserID    string          `json:"user_id"`
	ColdStart bool            `json:"cold_start"`
	Items     []recommendItem `json:"items"`
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	movies, err := s.catalog.ListMovies(r.Context())
	if err != nil {
		s.logger.Error("list items failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, movies)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var u core.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if u.ID == "" || u.Name == "" {
		s.respondError(w, http.StatusBadRequest, "id and name are required")
		return
	}
	if err := s.users.PutUser(r.Context(), &u); err != nil {
		s.logger.Error("create user failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, &u)
}

func (s *Server) handleCreateRating(w http.ResponseWriter, r *http.Request) {
	var rating core.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if rating.UserID == "" || rating.MovieID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id and movie_id are required")
		return
	}
	if _, err := s.catalog.GetMovie(r.Context(), rating.MovieID); err != nil {
		if core.IsNotFound(err) {
			s.respondError(w, http.StatusNotFound, "movie not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := s.ratings.PutRating(r.Context(), &rating); err != nil {
		s.logger.Error("create rating failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, &rating)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	ratings, err := s.ratings.ListRatings(r.Context(), userID)
	if err != nil {
		s.logger.Error("list ratings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"user_id": userID, "ratings": ratings})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.N <= 0 {
		req.N = s.cfg.Rec.DefaultN
	}

	result, err := s.engine.Recommend(r.Context(), req.UserID, req.N)
	if err != nil {
		s.logger.Error("recommend failed", zap.String("user_id", req.UserID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := recommendResponse{
		UserID:    result.UserID,
		ColdStart: result.ColdStart,
		Items:     []recommendItem{},
	}
	for _, it := range result.Items {
		item := recommendItem{MovieID: it.MovieID, Score: it.Score}
		if mv, err := s.catalog.GetMovie(r.Context(), it.MovieID); err == nil {
			item.Title = mv.Title
			item.PosterLink = mv.PosterLink
		}
		resp.Items = append(resp.Items, item)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	n := s.cfg.Rec.DefaultN
	if q := r.URL.Query().Get("n"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			n = v
		}
	}

	report, err := s.engine.Metrics(r.Context(), userID, n)
	if err != nil {
		s.logger.Error("metrics failed", zap.String("user_id", userID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"model_version": s.engine.Version(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
