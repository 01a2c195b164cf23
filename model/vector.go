package model

import "math"

// Vector 是稀疏的词权重向量：term -> weight。
// 稀疏表示下缺省项即为 0，两个向量天然处于同一词空间。
type Vector map[string]float64

// Dot 计算内积。遍历较小的一侧，复杂度 O(min(nnz(a), nnz(b)))。
func (v Vector) Dot(other Vector) float64 {
	a, b := v, other
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}
	return dot
}

// Norm 返回 L2 范数。
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Normalize 原地做 L2 归一化，使余弦相似度退化为内积。
// 零向量保持不变（空文档的物品与任何画像的相似度定义为 0）。
func (v Vector) Normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for term, w := range v {
		v[term] = w / norm
	}
}

// Clone 返回向量的深拷贝。
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for term, w := range v {
		out[term] = w
	}
	return out
}

// Cosine 计算两个向量的余弦相似度。任一侧为零向量时定义为 0。
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}
