package config

import (
	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/filter"
	"github.com/GabrielSilvaSI/Rice/pipeline"
	"github.com/GabrielSilvaSI/Rice/pkg/conv"
	"github.com/GabrielSilvaSI/Rice/recall"
	"github.com/GabrielSilvaSI/Rice/rerank"
)

// DefaultFactory 返回包含所有内置 Node 的工厂。
//
// recall.content 依赖运行期对象（模型快照、画像来源），纯配置无法表达，
// 因此由调用方显式传入；filter 与 rerank.topn 只需要配置本身。
func DefaultFactory(models recall.ModelSource, profiles recall.ProfileSource, ratings core.RatingStore) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.content", func(config map[string]interface{}) (pipeline.Node, error) {
		return &recall.ContentRecall{
			Models:   models,
			Profiles: profiles,
			TopK:     int(conv.ConfigGetInt64(config, "top_k", 0)),
		}, nil
	})

	factory.Register("filter", buildFilterNode(ratings))

	factory.Register("rerank.topn", func(config map[string]interface{}) (pipeline.Node, error) {
		return &rerank.TopNNode{N: int(conv.ConfigGetInt64(config, "n", 0))}, nil
	})

	return factory
}

// buildFilterNode 根据配置组合过滤器：
//
//	type: filter
//	config:
//	  rated: true            # 剔除已评分电影
//	  rule: "item.score > 0" # 可选的 CEL 质量规则
func buildFilterNode(ratings core.RatingStore) pipeline.NodeBuilder {
	return func(config map[string]interface{}) (pipeline.Node, error) {
		var filters []filter.Filter
		if conv.ConfigGet(config, "rated", true) {
			filters = append(filters, filter.NewRatedFilter(ratings))
		}
		if expr := conv.ConfigGet(config, "rule", ""); expr != "" {
			f := filter.NewRuleFilter(expr)
			f.Strict = conv.ConfigGet(config, "strict", false)
			filters = append(filters, f)
		}
		return &filter.FilterNode{Filters: filters}, nil
	}
}
