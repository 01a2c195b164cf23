package server

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/GabrielSilvaSI/Rice/store"
)

// catalogWatcher 监听目录 CSV 文件的变化：文件被写入后重新加载目录、
// 写入存储并触发引擎 Refit。进行中的推荐请求不受影响——它们继续使用
// 取到的旧快照，新请求拿到新快照。
type catalogWatcher struct {
	srv     *Server
	csvPath string
	fsw     *fsnotify.Watcher
	done    chan struct{}
}

// debounce 编辑器保存往往触发连续多个事件，合并成一次重载。
const reloadDebounce = 500 * time.Millisecond

func newCatalogWatcher(srv *Server, csvPath string) (*catalogWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// 监听父目录：很多编辑器用 rename 替换文件，直接监听文件会丢失后续事件
	if err := fsw.Add(filepath.Dir(csvPath)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &catalogWatcher{
		srv:     srv,
		csvPath: csvPath,
		fsw:     fsw,
		done:    make(chan struct{}),
	}, nil
}

func (w *catalogWatcher) run() {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.csvPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.srv.logger.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *catalogWatcher) reload() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	movies, err := store.LoadCatalogCSV(w.csvPath)
	if err != nil {
		w.srv.logger.Error("catalog reload failed", zap.String("path", w.csvPath), zap.Error(err))
		return
	}
	if err := w.srv.catalog.PutMovies(ctx, movies); err != nil {
		w.srv.logger.Error("catalog persist failed", zap.Error(err))
		return
	}
	if err := w.srv.ReloadCatalog(ctx); err != nil {
		w.srv.logger.Error("model refit failed", zap.Error(err))
		return
	}
	w.srv.logger.Info("catalog reloaded", zap.Int("movies", len(movies)))
}

func (w *catalogWatcher) close() {
	close(w.done)
	_ = w.fsw.Close()
}
