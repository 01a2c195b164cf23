package filter

import (
	"context"

	"github.com/GabrielSilvaSI/Rice/core"
)

// RatedFilter 剔除用户已经评分过的电影——喜欢和不喜欢的都剔除，
// 推荐看过的电影没有意义。
//
// 排除集的来源有两个，按序检查：
//  1. RecommendContext.ExcludedIDs（请求级显式排除集，可测试、可审计）
//  2. RatingStore 的评分历史（喜欢 + 不喜欢全部计入）
type RatedFilter struct {
	// Store 用于读取用户评分历史；为 nil 时只看请求级排除集
	Store core.RatingStore
}

// NewRatedFilter 创建一个已评分过滤器。
func NewRatedFilter(store core.RatingStore) *RatedFilter {
	return &RatedFilter{Store: store}
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if rctx == nil {
		return false, nil
	}

	// 1. 请求级排除集
	if rctx.IsExcluded(item.ID) {
		return true, nil
	}

	// 2. 评分历史
	if f.Store == nil || rctx.UserID == "" {
		return false, nil
	}
	ratings, err := f.Store.ListRatings(ctx, rctx.UserID)
	if err != nil {
		// 存储读取失败时保守放行，由上游决定是否中断
		return false, nil
	}
	for _, r := range ratings {
		if r != nil && r.MovieID == item.ID {
			return true, nil
		}
	}
	return false, nil
}
