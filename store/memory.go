package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/GabrielSilvaSI/Rice/core"
)

// MemoryStore 是内存实现的存储，用于测试/开发/原型。
// 同时实现 core.CatalogStore、core.RatingStore、core.UserStore；
// 进程重启后数据丢失。
type MemoryStore struct {
	mu      sync.RWMutex
	movies  map[string]*core.Movie
	users   map[string]*core.User
	ratings map[string]map[string]*core.Rating // userID -> movieID -> 生效评分
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		movies:  make(map[string]*core.Movie),
		users:   make(map[string]*core.User),
		ratings: make(map[string]map[string]*core.Rating),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

var (
	_ core.CatalogStore = (*MemoryStore)(nil)
	_ core.RatingStore  = (*MemoryStore)(nil)
	_ core.UserStore    = (*MemoryStore)(nil)
)

func (m *MemoryStore) ListMovies(ctx context.Context) ([]*core.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.Movie, 0, len(m.movies))
	for _, mv := range m.movies {
		out = append(out, mv)
	}
	// 顺序稳定：目录快照按 ID 升序
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetMovie(ctx context.Context, id string) (*core.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	mv, ok := m.movies[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return mv, nil
}

func (m *MemoryStore) PutMovies(ctx context.Context, movies []*core.Movie) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mv := range movies {
		if mv != nil && mv.ID != "" {
			m.movies[mv.ID] = mv
		}
	}
	return nil
}

// PutRating 写入一条评分。同一 (user, movie) 直接覆盖旧值：last-write-wins。
func (m *MemoryStore) PutRating(ctx context.Context, r *core.Rating) error {
	if r == nil || r.UserID == "" || r.MovieID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: rating must carry user_id and movie_id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ratings[r.UserID] == nil {
		m.ratings[r.UserID] = make(map[string]*core.Rating)
	}
	cp := *r
	if cp.RatedAt == 0 {
		cp.RatedAt = time.Now().Unix()
	}
	m.ratings[r.UserID][r.MovieID] = &cp
	return nil
}

func (m *MemoryStore) ListRatings(ctx context.Context, userID string) ([]*core.Rating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMovie := m.ratings[userID]
	out := make([]*core.Rating, 0, len(byMovie))
	for _, r := range byMovie {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}

func (m *MemoryStore) PutUser(ctx context.Context, u *core.User) error {
	if u == nil || u.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: user must carry an id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, id string) (*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrStoreNotFound
	}
	return u, nil
}

func (m *MemoryStore) ListUsers(ctx context.Context) ([]*core.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*core.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
