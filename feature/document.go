// Package feature 负责把电影的结构化属性转换为向量化输入（content soup）。
package feature

import (
	"strings"
	"unicode"

	"github.com/GabrielSilvaSI/Rice/core"
)

// 字段权重：高信号字段（类型、导演）在文档中重复出现，抬高其词频。
// 这是有意的设计选择：一部电影"是什么类型、谁导的"比剧情简介里的
// 单个词更能代表它的内容画像。
const (
	GenreWeight    = 2
	DirectorWeight = 2
	CastWeight     = 1
)

// AtomicToken 把多词实体（人名、复合类型名）归一为单个 token：
// 小写化并用 '_' 连接内部空白。
//
// 不做这一步的话 "Christopher Nolan" 会被拆成 "christopher" 和 "nolan"，
// 与其他无关人物的常见姓/名发生碰撞，这是内容向量化最经典的坑。
func AtomicToken(s string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) == 0 {
		return ""
	}
	return strings.Join(fields, "_")
}

// Tokenize 把自由文本（剧情简介）切分为小写词元，按非字母数字的连续段切分。
// 字母判定用 unicode 类别而不是 ASCII 区间：简介里的重音字符（"Amélie"、
// "ação"）必须保持词形完整，否则会被切成碎片污染词表。
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

// Tokens 返回一部电影的全部内容词元，字段按权重重复。
// 顺序稳定：genres → director → cast → synopsis。
func Tokens(m *core.Movie) []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, 16)

	for _, g := range m.Genres {
		if tok := AtomicToken(g); tok != "" {
			for i := 0; i < GenreWeight; i++ {
				out = append(out, tok)
			}
		}
	}
	if tok := AtomicToken(m.Director); tok != "" {
		for i := 0; i < DirectorWeight; i++ {
			out = append(out, tok)
		}
	}
	for _, actor := range m.PrincipalCast() {
		if tok := AtomicToken(actor); tok != "" {
			for i := 0; i < CastWeight; i++ {
				out = append(out, tok)
			}
		}
	}
	out = append(out, Tokenize(m.Synopsis)...)
	return out
}

// BuildDocument 返回拼接后的内容文档字符串，主要用于观测与调试；
// 向量化路径直接使用 Tokens，避免二次切分。
func BuildDocument(m *core.Movie) string {
	return strings.Join(Tokens(m), " ")
}
