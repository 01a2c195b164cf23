package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GabrielSilvaSI/Rice/core"
)

// SQLiteStore 是 SQLite 实现的存储：单机持久化，无需外部服务。
// 评分表以 (user_id, movie_id) 为主键做 upsert，满足 last-write-wins。
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore 打开（或创建）dbPath 处的 SQLite 库并初始化 schema。
// 父目录不存在时自动创建。
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS movies (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		genres TEXT,
		director TEXT,
		"cast" TEXT,
		synopsis TEXT,
		poster_link TEXT
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ratings (
		user_id TEXT NOT NULL,
		movie_id TEXT NOT NULL,
		liked INTEGER NOT NULL,
		rated_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
		PRIMARY KEY (user_id, movie_id)
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings(user_id);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *SQLiteStore) Name() string { return "sqlite" }

var (
	_ core.CatalogStore = (*SQLiteStore)(nil)
	_ core.RatingStore  = (*SQLiteStore)(nil)
	_ core.UserStore    = (*SQLiteStore)(nil)
)

func (s *SQLiteStore) ListMovies(ctx context.Context) ([]*core.Movie, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, genres, director, "cast", synopsis, poster_link FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Movie
	for rows.Next() {
		mv, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetMovie(ctx context.Context, id string) (*core.Movie, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, genres, director, "cast", synopsis, poster_link FROM movies WHERE id = ?`, id)
	mv, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return mv, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// 多值字段（genres、cast）以 JSON 数组存储，避免分隔符歧义。
func scanMovie(r rowScanner) (*core.Movie, error) {
	var mv core.Movie
	var genres, cast sql.NullString
	var director, synopsis, poster sql.NullString
	if err := r.Scan(&mv.ID, &mv.Title, &genres, &director, &cast, &synopsis, &poster); err != nil {
		return nil, err
	}
	if genres.Valid && genres.String != "" {
		_ = json.Unmarshal([]byte(genres.String), &mv.Genres)
	}
	if cast.Valid && cast.String != "" {
		_ = json.Unmarshal([]byte(cast.String), &mv.Cast)
	}
	mv.Director = director.String
	mv.Synopsis = synopsis.String
	mv.PosterLink = poster.String
	return &mv, nil
}

func (s *SQLiteStore) PutMovies(ctx context.Context, movies []*core.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO movies (id, title, genres, director, "cast", synopsis, poster_link)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, genres = excluded.genres, director = excluded.director,
			"cast" = excluded."cast", synopsis = excluded.synopsis, poster_link = excluded.poster_link`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, mv := range movies {
		if mv == nil || mv.ID == "" {
			continue
		}
		genres, _ := json.Marshal(mv.Genres)
		cast, _ := json.Marshal(mv.Cast)
		if _, err := stmt.ExecContext(ctx, mv.ID, mv.Title, string(genres), mv.Director,
			string(cast), mv.Synopsis, mv.PosterLink); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) PutRating(ctx context.Context, r *core.Rating) error {
	if r == nil || r.UserID == "" || r.MovieID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: rating must carry user_id and movie_id")
	}
	liked := 0
	if r.Liked {
		liked = 1
	}
	// 主键冲突时整行覆盖：last-write-wins
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ratings (user_id, movie_id, liked, rated_at)
		VALUES (?, ?, ?, strftime('%s','now'))
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			liked = excluded.liked, rated_at = excluded.rated_at`,
		r.UserID, r.MovieID, liked)
	return err
}

func (s *SQLiteStore) ListRatings(ctx context.Context, userID string) ([]*core.Rating, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, movie_id, liked, rated_at FROM ratings WHERE user_id = ? ORDER BY movie_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.Rating
	for rows.Next() {
		var r core.Rating
		var liked int
		if err := rows.Scan(&r.UserID, &r.MovieID, &liked, &r.RatedAt); err != nil {
			return nil, err
		}
		r.Liked = liked != 0
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) PutUser(ctx context.Context, u *core.User) error {
	if u == nil || u.ID == "" {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "store: user must carry an id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`, u.ID, u.Name)
	return err
}

func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*core.User, error) {
	var u core.User
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM users WHERE id = ?`, id).Scan(&u.ID, &u.Name)
	if err == sql.ErrNoRows {
		return nil, core.ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*core.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
