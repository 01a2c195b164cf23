// Package eval 对一份推荐列表做检索质量评估：混淆矩阵与 precision/recall/F1。
package eval

// ConfusionMatrix 是对单个用户、单份推荐列表、单份 ground truth 的四格计数。
// 分类宇宙是全量目录：每部电影恰好落入四格之一。
type ConfusionMatrix struct {
	TP int `json:"tp"` // 推荐了，且用户确实喜欢
	FP int `json:"fp"` // 推荐了，但用户并不喜欢
	FN int `json:"fn"` // 用户喜欢，但没推荐出来
	TN int `json:"tn"` // 既没推荐，用户也不喜欢
}

// Total 返回四格之和，恒等于参与分类的目录大小。
func (c ConfusionMatrix) Total() int {
	return c.TP + c.FP + c.FN + c.TN
}

// Report 是一次评估的完整输出：四个计数和三个比率一起返回，
// 调用方可以复核推导过程，而不是只拿到几个比值。
//
// 分母为零的比率定义为 0，从不报错；同时用两个标志位区分
// "因为没有数据而得 0" 和 "确实算出来是 0"。
type Report struct {
	ConfusionMatrix

	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	// EmptyGroundTruth 表示用户还没有任何喜欢的电影（recall 的 0 是退化值）
	EmptyGroundTruth bool `json:"empty_ground_truth"`

	// EmptyRecommendations 表示推荐列表为空（precision 的 0 是退化值）
	EmptyRecommendations bool `json:"empty_recommendations"`
}

// Evaluate 比较推荐列表与 ground truth（用户全部喜欢过的电影，不受 N 限制）。
//
//   - recommended: 推荐列表中的电影 ID（有序无所谓，评估只看集合）
//   - liked: ground truth，来自原始评分历史
//   - all: 分类宇宙，当前目录的全部电影 ID
//
// 不在 all 中的 ID（失效引用）不参与任何一格的计数。
// Evaluate 是纯函数：相同输入永远得到相同输出。
func Evaluate(recommended, liked, all []string) Report {
	recSet := make(map[string]bool, len(recommended))
	for _, id := range recommended {
		recSet[id] = true
	}
	likedSet := make(map[string]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}

	var r Report
	seen := make(map[string]bool, len(all))
	for _, id := range all {
		if seen[id] {
			continue
		}
		seen[id] = true
		switch {
		case recSet[id] && likedSet[id]:
			r.TP++
		case recSet[id]:
			r.FP++
		case likedSet[id]:
			r.FN++
		default:
			r.TN++
		}
	}

	// ground truth 里只统计真实存在于宇宙中的喜欢
	likedInUniverse := 0
	for id := range likedSet {
		if seen[id] {
			likedInUniverse++
		}
	}
	r.EmptyGroundTruth = likedInUniverse == 0
	r.EmptyRecommendations = r.TP+r.FP == 0

	if r.TP+r.FP > 0 {
		r.Precision = float64(r.TP) / float64(r.TP+r.FP)
	}
	if r.TP+r.FN > 0 {
		r.Recall = float64(r.TP) / float64(r.TP+r.FN)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}
