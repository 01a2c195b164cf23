package core

import "github.com/GabrielSilvaSI/Rice/pkg/utils"

// RecommendContext 承载一次推荐请求的用户与请求级信息，贯穿整个 Pipeline 透传。
// 用户身份始终是显式参数，不存在"当前活跃用户"这类环境态。
type RecommendContext struct {
	UserID string

	// ExcludedIDs 是本次请求显式排除的物品 ID（通常为用户已评分的电影）。
	// 过滤集显式传入，保证可测试、可审计。
	ExcludedIDs map[string]bool

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（num_recommendations、min_score 等）
	Params map[string]any
}

// Exclude 把一组物品 ID 加入排除集。
func (rctx *RecommendContext) Exclude(ids ...string) {
	if rctx.ExcludedIDs == nil {
		rctx.ExcludedIDs = make(map[string]bool, len(ids))
	}
	for _, id := range ids {
		rctx.ExcludedIDs[id] = true
	}
}

// IsExcluded 判断物品是否在排除集中。
func (rctx *RecommendContext) IsExcluded(id string) bool {
	return rctx.ExcludedIDs != nil && rctx.ExcludedIDs[id]
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
