// Package server 提供 RICE 的 HTTP API：目录、用户、评分的薄 CRUD 层，
// 以及调用推荐引擎的 /recommend 与 /metrics 端点。
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/GabrielSilvaSI/Rice/config"
	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/engine"
)

// Server 是 HTTP 服务。所有 I/O（目录、用户、评分的持久化）都在这一层，
// 引擎只消费内存中的结构。
type Server struct {
	engine  *engine.Engine
	catalog core.CatalogStore
	users   core.UserStore
	ratings core.RatingStore
	cfg     *config.Service
	logger  *zap.Logger
	server  *http.Server
	watcher *catalogWatcher
}

// NewServer 创建服务实例。
func NewServer(
	eng *engine.Engine,
	catalog core.CatalogStore,
	users core.UserStore,
	ratings core.RatingStore,
	cfg *config.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:  eng,
		catalog: catalog,
		users:   users,
		ratings: ratings,
		cfg:     cfg,
		logger:  logger,
	}
}

// Router 组装路由，独立出来便于 httptest 测试。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/items", s.handleListItems)
	r.Get("/api/v1/users", s.handleListUsers)
	r.Post("/api/v1/users", s.handleCreateUser)
	r.Post("/api/v1/ratings", s.handleCreateRating)
	r.Get("/api/v1/users/{id}/ratings", s.handleListRatings)
	r.Post("/api/v1/recommend", s.handleRecommend)
	r.Get("/api/v1/users/{id}/metrics", s.handleMetrics)
	r.Get("/health", s.handleHealth)

	return r
}

// Start 启动 HTTP 服务并阻塞直到退出。
func (s *Server) Start() error {
	if s.cfg.Catalog.Watch && s.cfg.Catalog.CSVPath != "" {
		w, err := newCatalogWatcher(s, s.cfg.Catalog.CSVPath)
		if err != nil {
			s.logger.Warn("catalog watcher disabled", zap.Error(err))
		} else {
			s.watcher = w
			go w.run()
		}
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop 优雅关闭。
func (s *Server) Stop(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.close()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ReloadCatalog 从目录存储取整表快照并重建模型（refit-then-swap）。
func (s *Server) ReloadCatalog(ctx context.Context) error {
	movies, err := s.catalog.ListMovies(ctx)
	if err != nil {
		return err
	}
	snapshot := s.engine.Refit(movies)
	s.logger.Info("model refitted",
		zap.Int("movies", snapshot.Len()),
		zap.Int("vocabulary", snapshot.VocabSize()),
		zap.Uint64("version", s.engine.Version()))
	return nil
}
