// Package engine 组装推荐链路并持有向量空间模型的版本化快照。
//
// 引擎本身是无状态计算：除了只读的模型快照，不持有任何跨请求的可变共享
// 状态。目录变更时 Refit 构建新快照并整体替换（refit-then-swap），
// 进行中的请求始终看到一个一致的版本。
package engine

import (
	"context"
	"sync"

	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/eval"
	"github.com/GabrielSilvaSI/Rice/filter"
	"github.com/GabrielSilvaSI/Rice/model"
	"github.com/GabrielSilvaSI/Rice/pipeline"
	"github.com/GabrielSilvaSI/Rice/recall"
	"github.com/GabrielSilvaSI/Rice/rerank"
)

// Recommendation 是推荐结果中的一项：电影 ID 与相似度分数。
// 分数来自归一化向量的内积，实际落在 [0, 1]。
type Recommendation struct {
	MovieID string  `json:"movie_id"`
	Score   float64 `json:"score"`
}

// Result 是一次推荐请求的完整输出。
// ColdStart 为 true 时 Items 为空：用户还没有任何正向评分，
// 这是显式的"无法推荐"信号，不是"对一切相似度为 0"。
type Result struct {
	UserID    string           `json:"user_id"`
	ColdStart bool             `json:"cold_start"`
	Items     []Recommendation `json:"items"`
}

// Engine 对宿主服务暴露四个操作：Refit（建模）、ProfileFor（建画像）、
// Recommend（排序）、Evaluate（评估）。每个操作都是普通的请求/响应，
// 没有隐藏状态；用户身份永远是显式参数。
type Engine struct {
	ratings core.RatingStore

	// RuleExpr 是可选的 CEL 质量规则（如 "item.score > 0.05"），
	// 非空时作为过滤阶段的一环
	RuleExpr string

	mu       sync.RWMutex
	snapshot *model.TFIDF
	version  uint64
}

// New 创建引擎。评分存储是唯一依赖：画像与排除集都由它派生。
func New(ratings core.RatingStore) *Engine {
	return &Engine{ratings: ratings}
}

// Refit 在完整目录上重建向量空间模型并替换快照。
// 模型是目录的纯函数；目录每次变化后调用方必须重新 Refit。
func (e *Engine) Refit(movies []*core.Movie) *model.TFIDF {
	snapshot := model.FitTFIDF(movies)

	e.mu.Lock()
	e.snapshot = snapshot
	e.version++
	e.mu.Unlock()
	return snapshot
}

// Model 返回当前只读快照，实现 recall.ModelSource。
// 尚未 Refit 时返回 nil（等价于空目录）。
func (e *Engine) Model() *model.TFIDF {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// Version 返回快照版本号，每次 Refit 递增，用于观测。
func (e *Engine) Version() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// ProfileFor 按评分历史构建用户口味画像，实现 recall.ProfileSource。
func (e *Engine) ProfileFor(ctx context.Context, rctx *core.RecommendContext) (*model.Profile, error) {
	return e.BuildProfile(ctx, rctx.UserID)
}

// BuildProfile 是 ProfileFor 的直接形式。冷启动返回的画像
// ColdStart() == true，而不是错误。
func (e *Engine) BuildProfile(ctx context.Context, userID string) (*model.Profile, error) {
	snapshot := e.Model()
	ratings, err := e.listRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.BuildProfile(snapshot, ratings), nil
}

// Recommend 为用户生成 Top-N 推荐。
//
//   - 已评分的电影（喜欢和不喜欢）都被排除
//   - 冷启动 → ColdStart=true 且结果为空
//   - 合格候选不足 N → 返回全部，不补位
func (e *Engine) Recommend(ctx context.Context, userID string, n int) (*Result, error) {
	return e.recommendOn(ctx, e.Model(), userID, n)
}

func (e *Engine) recommendOn(ctx context.Context, snapshot *model.TFIDF, userID string, n int) (*Result, error) {
	res := &Result{UserID: userID, Items: []Recommendation{}}
	if snapshot == nil || snapshot.Len() == 0 {
		return res, nil
	}

	ratings, err := e.listRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := model.BuildProfile(snapshot, ratings)
	if profile.ColdStart() {
		res.ColdStart = true
		return res, nil
	}

	rctx := &core.RecommendContext{
		UserID: userID,
		Params: map[string]any{"profile": profile},
	}
	for _, r := range ratings {
		rctx.Exclude(r.MovieID)
	}

	items, err := e.pipelineFor(snapshot, n).Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		res.Items = append(res.Items, Recommendation{MovieID: it.ID, Score: it.Score})
	}
	return res, nil
}

// pipelineFor 组装一次请求的链路：内容召回 → 已评分/规则过滤 → TopN 截断。
// Node 都是轻量结构体，按请求组装使 N 保持显式参数。
func (e *Engine) pipelineFor(snapshot *model.TFIDF, n int) *pipeline.Pipeline {
	filters := []filter.Filter{filter.NewRatedFilter(nil)}
	if e.RuleExpr != "" {
		filters = append(filters, filter.NewRuleFilter(e.RuleExpr))
	}
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.ContentRecall{Models: staticModel{snapshot}, Profiles: e},
			&filter.FilterNode{Filters: filters},
			&rerank.TopNNode{N: n},
		},
	}
}

// staticModel 把 Recommend 开头取到的快照固定住：即使链路执行期间发生
// Refit，本次请求也始终使用同一个模型版本。
type staticModel struct{ m *model.TFIDF }

func (s staticModel) Model() *model.TFIDF { return s.m }

// Evaluate 把一份推荐列表与用户的 ground truth（全部喜欢过的电影，
// 不受 N 限制）对比，分类宇宙是当前快照中的全部电影。
func (e *Engine) Evaluate(ctx context.Context, userID string, recommended []string) (eval.Report, error) {
	return e.evaluateOn(ctx, e.Model(), userID, recommended)
}

func (e *Engine) evaluateOn(ctx context.Context, snapshot *model.TFIDF, userID string, recommended []string) (eval.Report, error) {
	var all []string
	if snapshot != nil {
		all = snapshot.IDs
	}

	ratings, err := e.listRatings(ctx, userID)
	if err != nil {
		return eval.Report{}, err
	}
	var liked []string
	for _, r := range ratings {
		if r.Liked {
			liked = append(liked, r.MovieID)
		}
	}
	return eval.Evaluate(recommended, liked, all), nil
}

// Metrics 是 Recommend + Evaluate 的组合：为用户生成 Top-N 推荐并立即评估。
// 快照在入口处取一次：推荐列表与评估宇宙来自同一个模型版本，
// 期间发生的 Refit 对本次请求不可见。
func (e *Engine) Metrics(ctx context.Context, userID string, n int) (eval.Report, error) {
	snapshot := e.Model()
	res, err := e.recommendOn(ctx, snapshot, userID, n)
	if err != nil {
		return eval.Report{}, err
	}
	recommended := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		recommended = append(recommended, it.MovieID)
	}
	return e.evaluateOn(ctx, snapshot, userID, recommended)
}

func (e *Engine) listRatings(ctx context.Context, userID string) ([]*core.Rating, error) {
	if e.ratings == nil || userID == "" {
		return nil, nil
	}
	return e.ratings.ListRatings(ctx, userID)
}
