package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// OpenCommentSheet открывает шторку комментариев поста.
// Список сбрасывается, после CommentsDelay загружаются комментарии,
// но только если шторка всё ещё относится к тому же посту.
// Источник — мок-пара в мок-режиме или без Comments, иначе Comments.ListByPost.
func (c *Container) OpenCommentSheet(ctx context.Context, post models.Post) error {
	const op = "feed.OpenCommentSheet"

	lg := log.From(ctx)

	var mock bool
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsCommentSheetVisible = true
		s.ActivePostID = post.ID
		s.ActivePostComments = []models.Comment{}
		mock = s.IsMockInterfaceEnabled
		return s
	})

	if err := sleep(ctx, c.cfg.CommentsDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var comments []models.Comment
	switch {
	case mock || c.comments == nil:
		comments = mockComments(post.ID)
	case post.ID == nil:
		comments = []models.Comment{}
	default:
		loaded, err := c.comments.ListByPost(ctx, *post.ID)
		if err != nil {
			lg.Error("load_comments_failed",
				slog.String("op", op),
				slog.Int64("post_id", *post.ID),
				slog.String("err", err.Error()),
			)
			c.store.Update(func(s FeedUIState) FeedUIState {
				if sameID(s.ActivePostID, post.ID) {
					msg := msgCommentsFailed + err.Error()
					s.ErrorMessage = &msg
				}
				return s
			})

			return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
		}
		comments = loaded
	}

	applied := false
	c.store.Update(func(s FeedUIState) FeedUIState {
		if !sameID(s.ActivePostID, post.ID) {
			return s
		}
		applied = true
		s.ActivePostComments = comments
		return s
	})

	lg.Debug("load_comments_ok",
		slog.String("op", op),
		slog.Int("items", len(comments)),
		slog.Bool("applied", applied),
	)

	return nil
}

// DismissCommentSheet закрывает шторку. Загруженные комментарии остаются в снапшоте
// до следующего открытия.
func (c *Container) DismissCommentSheet() {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsCommentSheetVisible = false
		s.ActivePostID = nil
		return s
	})
}

// AddComment добавляет локальный комментарий к активному посту без сохранения на сервере.
// Возвращает false, если активного поста нет.
func (c *Container) AddComment(content string) bool {
	added := false

	c.store.Update(func(s FeedUIState) FeedUIState {
		if s.ActivePostID == nil {
			return s
		}

		id := max(c.now().UnixMilli(), s.maxCommentID()+1)
		comment := models.Comment{
			ID:         models.Ptr(id),
			PostID:     *s.ActivePostID,
			UserID:     "Me",
			Content:    content,
			CreatedAt:  models.Ptr("Just now"),
			UserAvatar: models.Ptr(AvatarURL("Me")),
		}

		comments := make([]models.Comment, 0, len(s.ActivePostComments)+1)
		comments = append(comments, s.ActivePostComments...)
		s.ActivePostComments = append(comments, comment)
		added = true
		return s
	})

	return added
}
