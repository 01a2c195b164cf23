// Package recall 提供候选集生成（召回）节点。
package recall

import (
	"context"
	"sort"

	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/model"
	"github.com/GabrielSilvaSI/Rice/pipeline"
	"github.com/GabrielSilvaSI/Rice/pkg/utils"
)

// ModelSource 提供当前的只读向量空间模型快照。
// 实现方负责 refit-then-swap：返回的快照在本次请求期间保持一致。
type ModelSource interface {
	Model() *model.TFIDF
}

// ProfileSource 按用户构建口味画像（通常由评分历史即时计算）。
type ProfileSource interface {
	ProfileFor(ctx context.Context, rctx *core.RecommendContext) (*model.Profile, error)
}

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："用户喜欢具有某些内容特征的电影，推荐内容特征相似的其他电影"。
// 画像与行向量都已 L2 归一化，逐行内积即余弦相似度，
// 复杂度 O(目录大小 × 向量非零元)。
type ContentRecall struct {
	Models   ModelSource
	Profiles ProfileSource

	// TopK 召回截断；<= 0 表示不截断（交给 rerank.topn 统一截断）
	TopK int
}

func (r *ContentRecall) Name() string {
	return "recall.content"
}

func (r *ContentRecall) Kind() pipeline.Kind {
	return pipeline.KindRecall
}

func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Models == nil || rctx == nil {
		return nil, nil
	}
	snapshot := r.Models.Model()
	if snapshot == nil || snapshot.Len() == 0 {
		// 空目录：恒为空结果，不是错误
		return nil, nil
	}

	// 1. 获取用户画像。优先取请求里已构建好的画像（避免重复计算），
	// 否则从 ProfileSource 即时构建。
	var profile *model.Profile
	if rctx.Params != nil {
		if p, ok := rctx.Params["profile"].(*model.Profile); ok {
			profile = p
		}
	}
	if profile == nil && r.Profiles != nil {
		p, err := r.Profiles.ProfileFor(ctx, rctx)
		if err != nil {
			return nil, err
		}
		profile = p
	}

	// 冷启动：显式空结果，而不是对全目录的零分排序
	if profile.ColdStart() {
		return nil, nil
	}

	// 契约校验：画像必须建在当前快照上，跨快照的画像直接拒绝本次请求
	if profile.Space() != nil && profile.Space() != snapshot {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeDimensionMismatch,
			"recall: profile was built against a different model snapshot")
	}

	// 2. 逐行打分
	type scoredItem struct {
		itemID string
		score  float64
	}
	scores := make([]scoredItem, 0, snapshot.Len())
	for i, row := range snapshot.Rows {
		score := profile.Vector.Dot(row)
		if score > 0 {
			// 零分意味着毫无内容重叠（含空文档的零向量），不进候选
			scores = append(scores, scoredItem{itemID: snapshot.IDs[i], score: score})
		}
	}

	// 3. 排序：分数降序，同分按 ID 升序，保证输出可复现
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].itemID < scores[j].itemID
	})
	if r.TopK > 0 && len(scores) > r.TopK {
		scores = scores[:r.TopK]
	}

	// 4. 封装结果
	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		it := core.NewItem(s.itemID)
		it.Score = s.score
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}

	return out, nil
}
