package minio

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/storage"

	"github.com/google/uuid"
)

// PresignedPut генерирует presigned PUT URL для медиа поста.
// Ключ: "posts/<userID>/<uuid><ext>". Публичный URL пуст, если PublicBaseURL не задан.
func (s *MediaStorage) PresignedPut(ctx context.Context, userID, contentType string, size int64) (string, string, time.Time, error) {
	const op = "storage/minio/media/PresignedPut"

	key, err := objectKey(userID, contentType, size, s.cfg.MaxSizeBytes, s.cfg.AllowedContentTypes)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	expiresAt := s.now().Add(s.cfg.PresignTTL)

	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return u.String(), publicURL(s.cfg.PublicBaseURL, key), expiresAt, nil
}

// objectKey валидирует тип/размер и строит ключ объекта.
func objectKey(userID, contentType string, size, maxSize int64, allow []string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || strings.Contains(userID, "/") {
		return "", storage.ErrInvalidArgument
	}

	if size <= 0 || size > maxSize {
		return "", storage.ErrInvalidArgument
	}

	if !isAllowedContentType(allow, contentType) {
		return "", storage.ErrInvalidArgument
	}

	return path.Join("posts", userID, uuid.NewString()+extension(contentType)), nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	case "video/mp4":
		return ".mp4"
	default:
		return ""
	}
}

func publicURL(base, key string) string {
	if base == "" {
		return ""
	}

	return strings.TrimRight(base, "/") + "/" + key
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
