package core

// MaxPrincipalCast 是参与内容向量化的主演人数上限。
// 演职员表很长，排序靠后的演员对内容画像的贡献可以忽略，只取前几位主演。
const MaxPrincipalCast = 4

// Movie 是目录中的一部电影。目录加载完成后视为不可变；
// 目录发生变化时整体重新加载并重建向量空间模型，而不是原地修改。
type Movie struct {
	ID         string   `json:"id" yaml:"id"`
	Title      string   `json:"title" yaml:"title"`
	Genres     []string `json:"genres" yaml:"genres"`
	Director   string   `json:"director" yaml:"director"`
	Cast       []string `json:"cast" yaml:"cast"` // 按番位排序，只保留前 MaxPrincipalCast 位
	Synopsis   string   `json:"synopsis" yaml:"synopsis"`
	PosterLink string   `json:"poster_link,omitempty" yaml:"poster_link,omitempty"`
}

// PrincipalCast 返回截断到 MaxPrincipalCast 的主演列表。
func (m *Movie) PrincipalCast() []string {
	if len(m.Cast) <= MaxPrincipalCast {
		return m.Cast
	}
	return m.Cast[:MaxPrincipalCast]
}

// User 是一个可以评分并接受推荐的用户。
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rating 是用户对一部电影的二元评价（喜欢 / 不喜欢），没有中间分值。
// 同一 (UserID, MovieID) 的多次评分由 RatingStore 保证 last-write-wins，
// 引擎侧假设每个 (用户, 电影) 至多一条生效评分。
type Rating struct {
	UserID  string `json:"user_id"`
	MovieID string `json:"movie_id"`
	Liked   bool   `json:"liked"`
	RatedAt int64  `json:"rated_at,omitempty"` // Unix 秒，用于 last-write-wins 判定
}
