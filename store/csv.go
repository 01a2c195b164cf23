package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GabrielSilvaSI/Rice/core"
)

// LoadCatalogCSV 从 IMDB 风格的 CSV 目录文件加载电影。
//
// 按表头取列，兼容常见两套命名：
//   - Series_Title/Genre/Director/Star1..Star4/Overview/Poster_Link
//   - title/genres/director/cast/synopsis/poster_link
//
// 可选 id 列缺失时用行号（从 1 起）作为稳定 ID。
// Genre 列按逗号拆分为多个类型。
func LoadCatalogCSV(path string) ([]*core.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return ReadCatalogCSV(f)
}

// ReadCatalogCSV 从任意 reader 读取 CSV 目录。
func ReadCatalogCSV(r io.Reader) ([]*core.Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // 行宽不齐时不报错，按列名取值

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := col[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
		}
		return ""
	}

	var out []*core.Movie
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		line++

		id := field(record, "id", "filme_id", "movie_id")
		if id == "" {
			id = strconv.Itoa(line)
		}

		var genres []string
		for _, g := range strings.Split(field(record, "genres", "genre"), ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}

		var cast []string
		if joined := field(record, "cast"); joined != "" {
			for _, c := range strings.Split(joined, ",") {
				if c = strings.TrimSpace(c); c != "" {
					cast = append(cast, c)
				}
			}
		} else {
			for _, star := range []string{"star1", "star2", "star3", "star4"} {
				if c := field(record, star); c != "" {
					cast = append(cast, c)
				}
			}
		}

		out = append(out, &core.Movie{
			ID:         id,
			Title:      field(record, "title", "series_title"),
			Genres:     genres,
			Director:   field(record, "director"),
			Cast:       cast,
			Synopsis:   field(record, "synopsis", "overview"),
			PosterLink: field(record, "poster_link"),
		})
	}
	return out, nil
}
