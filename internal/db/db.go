package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kalwarein/born-to-blog/internal/models"
)

// ErrDuplicate возвращается InsertPost при нарушении уникальности
// external_url — гонка с параллельным запуском, не ошибка.
var ErrDuplicate = errors.New("post already exists")

// uniqueViolation — код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// PostExists проверяет, есть ли уже статья с таким external_url.
func (db *Database) PostExists(ctx context.Context, externalURL string) (bool, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
        SELECT id FROM posts WHERE external_url = $1
    `, externalURL).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertPost сохраняет одну внешнюю статью в таблицу posts.
// Пустые subtitle, excerpt и image_url сохраняются как NULL.
func (db *Database) InsertPost(ctx context.Context, post models.Post) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO posts (
            title, subtitle, content, excerpt, image_url, external_url,
            source_name, is_external, post_type, status, reading_time,
            author_id, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULL, $12)
    `,
		post.Title,
		nullable(post.Subtitle),
		post.Content,
		nullable(post.Excerpt),
		nullable(post.ImageURL),
		post.ExternalURL,
		post.SourceName,
		post.IsExternal,
		post.PostType,
		post.Status,
		post.ReadingTime,
		post.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// InsertRunLog записывает сводку запуска одной строкой в таблицу logs.
// Детали сериализуются драйвером в jsonb.
func (db *Database) InsertRunLog(ctx context.Context, details models.RunDetails) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO logs (action, details)
        VALUES ($1, $2)
    `, "rss_news_fetch", details)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
