// Package rice 是一个基于内容过滤（Content-Based Filtering）的电影推荐系统。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → ReRank）
// - 快照式模型: TF-IDF 向量空间模型是只读快照，目录变更时整体重建并原子替换
// - 显式冷启动: 无正向评分的用户得到明确的空结果信号，而非无意义的全量排序
package rice

import "github.com/GabrielSilvaSI/Rice/pipeline"

// 轻量 facade：便于用户直接 import 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
