package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"

	"github.com/jackc/pgx/v5"
)

const insertPostSQL = `
INSERT INTO posts (content, user_id, likes, community, tone, image_url, video_url, user_avatar)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// ListPosts возвращает до limit постов (limit <= 0 — все).
// Сортировка фиксирована: created_at DESC, id DESC.
func (s *Storage) ListPosts(ctx context.Context, limit int) ([]models.Post, error) {
	const op = "storage.postgres.ListPosts"

	// LIMIT NULL в PostgreSQL эквивалентен LIMIT ALL.
	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := s.db.Query(ctx, `
	SELECT id, created_at, content, user_id, likes, community, tone, image_url, video_url, user_avatar
	FROM posts
	ORDER BY created_at DESC, id DESC
	LIMIT $1
	`, lim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, max(limit, 0))
	for rows.Next() {
		var (
			p         models.Post
			id        int64
			createdAt time.Time
		)
		if scanErr := rows.Scan(
			&id,
			&createdAt,
			&p.Content,
			&p.UserID,
			&p.Likes,
			&p.Community,
			&p.Tone,
			&p.ImageURL,
			&p.VideoURL,
			&p.UserAvatar,
		); scanErr != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, scanErr)
		}

		p.ID = &id
		p.CreatedAt = models.Ptr(createdAt.UTC().Format(time.RFC3339))
		posts = append(posts, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, rows.Err())
	}

	return posts, nil
}

// InsertPost сохраняет один пост. id и created_at выставляет БД.
func (s *Storage) InsertPost(ctx context.Context, post models.Post) error {
	const op = "storage.postgres.InsertPost"

	if post.Likes < 0 {
		return fmt.Errorf("%s: negative likes: %w", op, storage.ErrInvalidArgument)
	}

	if _, err := s.db.Exec(ctx, insertPostSQL, insertArgs(post)...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// InsertPosts сохраняет пачку постов в одной транзакции через pgx.Batch.
func (s *Storage) InsertPosts(ctx context.Context, posts []models.Post) error {
	const op = "storage.postgres.InsertPosts"

	if len(posts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, p := range posts {
		if p.Likes < 0 {
			return fmt.Errorf("%s: item %d negative likes: %w", op, i, storage.ErrInvalidArgument)
		}
		batch.Queue(insertPostSQL, insertArgs(p)...)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("%s: batch item %d: %w", op, i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("%s: batch close: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// DeletePost удаляет пост по id.
// Если записи нет — storage.ErrNotFound.
func (s *Storage) DeletePost(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeletePost"

	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteAllPosts удаляет все посты с id > 0.
func (s *Storage) DeleteAllPosts(ctx context.Context) (int64, error) {
	const op = "storage.postgres.DeleteAllPosts"

	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id > 0`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}

// insertArgs раскладывает пост в аргументы insertPostSQL. IsLikedByMe не пишется.
func insertArgs(p models.Post) []any {
	return []any{p.Content, p.UserID, p.Likes, p.Community, p.Tone, p.ImageURL, p.VideoURL, p.UserAvatar}
}
