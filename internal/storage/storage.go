// storage определяет контракты внешних источников данных NeuroNet.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — запрос не может быть выполнен с переданными параметрами.
	ErrInvalidArgument = errors.New("invalid argument")
)

//go:generate mockgen -source=storage.go -destination=../../mocks/storage_mock.go -package=mocks

// PostsStorage — удалённый источник постов ленты.
type PostsStorage interface {
	// ListPosts возвращает до limit постов, отсортированных по created_at DESC.
	// limit <= 0 — все посты.
	ListPosts(ctx context.Context, limit int) ([]models.Post, error)
	// InsertPost сохраняет пост; ID и CreatedAt присваивает хранилище.
	// IsLikedByMe не сохраняется никогда.
	InsertPost(ctx context.Context, post models.Post) error
	// InsertPosts сохраняет пачку постов одной операцией.
	InsertPosts(ctx context.Context, posts []models.Post) error
	// DeletePost удаляет пост по id. Отсутствие записи — ErrNotFound.
	DeletePost(ctx context.Context, id int64) error
	// DeleteAllPosts удаляет все посты с id > 0 и возвращает их количество.
	DeleteAllPosts(ctx context.Context) (int64, error)
}

// CommentsStorage — источник комментариев для шторки.
type CommentsStorage interface {
	// ListByPost возвращает комментарии поста в порядке создания.
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// MediaStorage — выдача presigned-URL для загрузки медиа поста.
type MediaStorage interface {
	// PresignedPut возвращает URL для PUT, публичный URL объекта и время истечения.
	PresignedPut(ctx context.Context, userID, contentType string, size int64) (uploadURL, publicURL string, expiresAt time.Time, err error)
}
