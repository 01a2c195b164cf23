// riced 是 RICE 推荐服务的入口。
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GabrielSilvaSI/Rice/config"
	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/engine"
	"github.com/GabrielSilvaSI/Rice/server"
	"github.com/GabrielSilvaSI/Rice/store"
)

var version = "dev"

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "path to service config")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("riced", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("riced exited", zap.Error(err))
	}
}

// loadConfig 加载配置；文件不存在时使用全部默认值（内存存储、无目录文件）。
func loadConfig(path string) (*config.Service, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &config.Service{}
		cfg.ApplyDefaults()
		return cfg, nil
	}
	return config.LoadService(path)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type backend interface {
	core.CatalogStore
	core.RatingStore
	core.UserStore
	Close() error
}

func openBackend(cfg *config.Service) (backend, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(cfg.Storage.SQLitePath)
	case "redis":
		return store.NewRedisStore(cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func run(cfg *config.Service, logger *zap.Logger) error {
	st, err := openBackend(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() { _ = st.Close() }()
	logger.Info("storage opened", zap.String("backend", cfg.Storage.Backend))

	ctx := context.Background()

	// 目录 CSV 存在时导入存储
	if cfg.Catalog.CSVPath != "" {
		movies, err := store.LoadCatalogCSV(cfg.Catalog.CSVPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if err := st.PutMovies(ctx, movies); err != nil {
			return fmt.Errorf("persist catalog: %w", err)
		}
		logger.Info("catalog imported", zap.String("path", cfg.Catalog.CSVPath), zap.Int("movies", len(movies)))
	}

	eng := engine.New(st)
	eng.RuleExpr = cfg.Rec.Rule

	srv := server.NewServer(eng, st, st, st, cfg, logger)

	// 启动前完成首次建模：服务一旦就绪即可应答推荐请求
	if err := srv.ReloadCatalog(ctx); err != nil {
		return fmt.Errorf("initial model fit: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
