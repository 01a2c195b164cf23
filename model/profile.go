package model

import "github.com/GabrielSilvaSI/Rice/core"

// Profile 是用户口味画像：其喜欢的电影向量的算术平均（再做 L2 归一化，
// 使其与预归一化的行向量做内积即得余弦相似度）。
//
// 画像是派生的瞬态数据：每次按当前评分历史重算，评分才是事实来源。
type Profile struct {
	UserID string

	// Vector 为 nil 表示冷启动：用户没有任何生效的正向评分。
	// 冷启动与零向量是两个不同契约——零向量意味着"跟一切都不相似"，
	// 冷启动意味着"无法推荐"，调用方必须能区分。
	Vector Vector

	// Liked 是参与均值计算的喜欢电影数
	Liked int

	// Skipped 是被跳过的失效引用数（评分过但已不在当前模型中）
	Skipped int

	space *TFIDF // 画像所属的模型快照，用于契约校验
}

// ColdStart 判断画像是否为冷启动（没有可用的口味向量）。
func (p *Profile) ColdStart() bool {
	return p == nil || p.Vector == nil
}

// Space 返回画像所属的模型快照。
func (p *Profile) Space() *TFIDF {
	if p == nil {
		return nil
	}
	return p.space
}

// BuildProfile 由用户评分历史构建口味画像。
//
//   - 只取 Liked == true 的评分
//   - 失效引用（电影已不在模型中）跳过，不中断构建
//   - 没有任何可用的喜欢向量 → 冷启动画像（Vector == nil）
func BuildProfile(m *TFIDF, ratings []*core.Rating) *Profile {
	p := &Profile{space: m}
	if m == nil || len(ratings) == 0 {
		return p
	}

	sum := make(Vector)
	for _, r := range ratings {
		if r == nil || !r.Liked {
			continue
		}
		if p.UserID == "" {
			p.UserID = r.UserID
		}
		row, ok := m.Row(r.MovieID)
		if !ok {
			p.Skipped++
			continue
		}
		for term, w := range row {
			sum[term] += w
		}
		p.Liked++
	}
	if p.Liked == 0 {
		return p
	}

	for term, w := range sum {
		sum[term] = w / float64(p.Liked)
	}
	sum.Normalize()
	p.Vector = sum
	return p
}
