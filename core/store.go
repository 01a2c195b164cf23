package core

import "context"

// 存储接口定义在领域层（core），由基础设施层（store）实现：
// 遵循依赖倒置原则，领域层不依赖基础设施层，避免循环依赖。

// CatalogStore 是电影目录的存储接口。目录是向量化的唯一数据来源，
// 引擎只消费 ListMovies 的整表快照。
type CatalogStore interface {
	// ListMovies 返回完整目录，顺序稳定（按 ID 升序）
	ListMovies(ctx context.Context) ([]*Movie, error)

	// GetMovie 按 ID 读取单部电影
	GetMovie(ctx context.Context, id string) (*Movie, error)

	// PutMovies 批量写入/覆盖电影
	PutMovies(ctx context.Context, movies []*Movie) error
}

// RatingStore 是评分的存储接口。保证同一 (user, movie) 的评分 last-write-wins。
type RatingStore interface {
	// PutRating 写入一条评分，覆盖同 (user, movie) 的旧值
	PutRating(ctx context.Context, r *Rating) error

	// ListRatings 返回某用户的全部生效评分
	ListRatings(ctx context.Context, userID string) ([]*Rating, error)
}

// UserStore 是用户的存储接口。
type UserStore interface {
	// PutUser 写入一个用户
	PutUser(ctx context.Context, u *User) error

	// GetUser 按 ID 读取用户
	GetUser(ctx context.Context, id string) (*User, error)

	// ListUsers 返回全部用户（按 ID 升序）
	ListUsers(ctx context.Context) ([]*User, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 检查错误是否为 key 不存在
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	if domainErr != nil && domainErr.Module == ModuleStore {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
