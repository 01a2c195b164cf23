package filter

import (
	"context"

	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述保留条件，不满足的候选被剔除。
// 规则来自配置，典型用法是相似度下限：
//
//	rule: "item.score > 0.05"
//
// Expr 描述的是"保留"语义，表达式求值为 false 时过滤。
type RuleFilter struct {
	// Expr 是 CEL 表达式；为空时不过滤任何候选
	Expr string

	// Strict 为 true 时表达式求值出错按过滤处理，否则出错放行
	Strict bool
}

// NewRuleFilter 创建一个规则过滤器。
func NewRuleFilter(expr string) *RuleFilter {
	return &RuleFilter{Expr: expr}
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Expr == "" || item == nil {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Expr)
	if err != nil {
		if f.Strict {
			return true, nil
		}
		return false, nil
	}
	return !keep, nil
}
