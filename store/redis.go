package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GabrielSilvaSI/Rice/core"
)

// RedisStore 是 Redis 实现的存储，生产环境常用，支持持久化、集群、哨兵等。
//
// 数据布局：
//   - 电影：movie:{id} -> JSON，索引集合 movies 存全部 ID
//   - 用户：user:{id} -> JSON，索引集合 users 存全部 ID
//   - 评分：rating:{userID} 为 Hash，field 是 movieID、value 是 JSON；
//     HSet 覆盖同 field，天然满足 last-write-wins
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Name() string { return "redis" }

var (
	_ core.CatalogStore = (*RedisStore)(nil)
	_ core.RatingStore  = (*RedisStore)(nil)
	_ core.UserStore    = (*RedisStore)(nil)
)

const (
	movieKeyPrefix  = "movie:"
	userKeyPrefix   = "user:"
	ratingKeyPrefix = "rating:"
	movieIndexKey   = "movies"
	userIndexKey    = "users"
)

func (r *RedisStore) ListMovies(ctx context.Context) ([]*core.Movie, error) {
	ids, err := r.client.SMembers(ctx, movieIndexKey).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = movieKeyPrefix + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*core.Movie, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var mv core.Movie
		if err := json.Unmarshal([]byte(s), &mv); err != nil {
			continue
		}
		out = append(out, &mv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisStore) GetMovie(ctx context.Context, id string) (*core.Movie, error) {
	data, err := r.client.Get(ctx, movieKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	var mv core.Movie
	if err := json.Unmarshal(data, &mv); err != nil {
		return nil, err
	}
	return &mv, nil
}

func (r *RedisStore) PutMovies(ctx context.Context, movies []*core.Movie) error {
	pipe := r.client.Pipeline()
	for _, mv := range movies {
		if mv == nil || mv.ID == "" {
			continue
		}
		data, err := json.Marshal(mv)
		if err != nil {
			return err
		}
		pipe.Set(ctx, movieKeyPrefix+mv.ID, data, 0)
		pipe.SAdd(ctx, movieIndexKey, mv.ID)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisStore) PutRating(ctx context.Context, rating *core.Rating) error {
	if rating == nil || rating.UserID == "" || rating.MovieID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: rating must carry user_id and movie_id")
	}
	cp := *rating
	if cp.RatedAt == 0 {
		cp.RatedAt = time.Now().Unix()
	}
	data, err := json.Marshal(&cp)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, ratingKeyPrefix+rating.UserID, rating.MovieID, data).Err()
}

func (r *RedisStore) ListRatings(ctx context.Context, userID string) ([]*core.Rating, error) {
	fields, err := r.client.HGetAll(ctx, ratingKeyPrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*core.Rating, 0, len(fields))
	for _, raw := range fields {
		var rt core.Rating
		if err := json.Unmarshal([]byte(raw), &rt); err != nil {
			continue
		}
		out = append(out, &rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out, nil
}

func (r *RedisStore) PutUser(ctx context.Context, u *core.User) error {
	if u == nil || u.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: user must carry an id")
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	pipe := r.client.Pipeline()
	pipe.Set(ctx, userKeyPrefix+u.ID, data, 0)
	pipe.SAdd(ctx, userIndexKey, u.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisStore) GetUser(ctx context.Context, id string) (*core.User, error) {
	data, err := r.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	var u core.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *RedisStore) ListUsers(ctx context.Context) ([]*core.User, error) {
	ids, err := r.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*core.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.GetUser(ctx, id)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
