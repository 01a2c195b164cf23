// Package rerank 提供排序结果上的重排与截断节点。
package rerank

import (
	"context"

	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，用于在召回/过滤之后截取前 N 个候选。
//
// 截断语义：
//   - N <= 0 时不截断，返回所有候选
//   - 合格候选不足 N 时全部返回——不补位、不报错
//
// 示例：
//
//	pipeline := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &recall.ContentRecall{...},   // 相似度召回
//	        &filter.FilterNode{...},      // 剔除已评分
//	        &rerank.TopNNode{N: 10},      // 截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的候选数量（Top N）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 {
		return items, nil
	}
	if len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
