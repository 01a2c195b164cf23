package model

import (
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/GabrielSilvaSI/Rice/core"
	"github.com/GabrielSilvaSI/Rice/feature"
)

// TFIDF 是拟合好的向量空间模型：词表（term -> 列号）加上每部电影一行
// L2 归一化的 TF-IDF 权重向量。
//
// 核心思想：
//   - 词在一篇文档里越频繁、在整个语料里越稀有，权重越高
//   - 行向量预先归一化，余弦相似度退化为内积
//
// 生命周期：模型是当前目录的纯函数。目录变化后必须整体重新拟合并替换快照
// （refit-then-swap），拟合完成后只读，任何请求都不会观察到半新半旧的状态。
type TFIDF struct {
	// Vocabulary 是词表：term -> 列号。列号按词典序分配，保证确定性。
	Vocabulary map[string]int

	// IDs 是行顺序对应的电影 ID：第 i 行就是拟合时第 i 部电影，一行不缺。
	IDs []string

	// Rows 是每部电影的 L2 归一化 TF-IDF 向量。空内容文档对应空（零）向量。
	Rows []Vector

	// IDF 是每个词的逆文档频率，保留下来便于审计与调试。
	IDF map[string]float64

	rowIndex map[string]int // movie id -> 行号
}

// fitChunks 是拟合时 errgroup 并行变换的分片数。
// 每个 goroutine 只写自己分片内的行，结果与串行完全一致。
const fitChunks = 4

// FitTFIDF 在完整目录上拟合向量空间模型。
//
// 边界情况：
//   - 空目录 → 空模型（对它排序恒为空结果）
//   - 语料只有 1 篇文档 → 平滑 IDF ln((1+n)/(1+df))+1 仍然有限
//   - 某部电影内容为空 → 零向量，永远不会被推荐
func FitTFIDF(movies []*core.Movie) *TFIDF {
	n := len(movies)
	m := &TFIDF{
		Vocabulary: make(map[string]int),
		IDs:        make([]string, n),
		Rows:       make([]Vector, n),
		IDF:        make(map[string]float64),
		rowIndex:   make(map[string]int, n),
	}
	if n == 0 {
		return m
	}

	// 第一遍：分词、统计文档频率
	docs := make([][]string, n)
	df := make(map[string]int)
	for i, mv := range movies {
		m.IDs[i] = mv.ID
		m.rowIndex[mv.ID] = i
		docs[i] = feature.Tokens(mv)
		seen := make(map[string]bool, len(docs[i]))
		for _, tok := range docs[i] {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	// 词表按词典序分配列号，两次拟合得到逐位一致的模型
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for col, term := range terms {
		m.Vocabulary[term] = col
		// 平滑 IDF：df >= 1 恒成立，语料大小为 1 时也不会除零
		m.IDF[term] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	// 第二遍：每行计算 TF-IDF 并 L2 归一化。行之间互不依赖，分片并行。
	var eg errgroup.Group
	chunk := (n + fitChunks - 1) / fitChunks
	for start := 0; start < n; start += chunk {
		lo, hi := start, start+chunk
		if hi > n {
			hi = n
		}
		eg.Go(func() error {
			for i := lo; i < hi; i++ {
				row := make(Vector, len(docs[i]))
				for _, tok := range docs[i] {
					row[tok] += m.IDF[tok] // tf 累加，再乘 idf 等价于乘在每次出现上
				}
				row.Normalize()
				m.Rows[i] = row
			}
			return nil
		})
	}
	_ = eg.Wait() // 分片内无错误路径

	return m
}

// Len 返回模型中的电影（行）数。
func (m *TFIDF) Len() int {
	return len(m.Rows)
}

// VocabSize 返回词表大小。
func (m *TFIDF) VocabSize() int {
	return len(m.Vocabulary)
}

// Row 按电影 ID 取行向量。失效引用（评分过但已不在目录中）返回 false。
func (m *TFIDF) Row(id string) (Vector, bool) {
	i, ok := m.rowIndex[id]
	if !ok {
		return nil, false
	}
	return m.Rows[i], true
}

// Has 判断电影是否在当前模型的向量空间中。
func (m *TFIDF) Has(id string) bool {
	_, ok := m.rowIndex[id]
	return ok
}
