package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// Разрушительные операции режима разработчика. Всегда идут в источник,
// мок-режим на них не влияет. После успеха лента перезагружается.

// FloodDB вставляет 5 постов со случайными лайками 0..100.
func (c *Container) FloodDB(ctx context.Context) error {
	posts := make([]models.Post, 0, 5)
	for i := 1; i <= 5; i++ {
		posts = append(posts, models.Post{
			Content:   fmt.Sprintf("Flood Post #%d: Testing database list performance.", i),
			Community: models.Ptr("r/DevTest"),
			Tone:      models.Ptr("/test"),
			UserID:    models.Ptr(c.cfg.CurrentUserID),
			Likes:     c.rand(101),
		})
	}

	return c.devInsert(ctx, "feed.FloodDB", "flood", msgFloodFailed, posts)
}

// StressTestDB вставляет 50 постов одной пачкой.
func (c *Container) StressTestDB(ctx context.Context) error {
	posts := make([]models.Post, 0, 50)
	for i := 1; i <= 50; i++ {
		posts = append(posts, models.Post{
			Content:   fmt.Sprintf("STRESS TEST POST #%d: Loading check...", i),
			Community: models.Ptr("r/StressTest"),
			Tone:      models.Ptr("/stress"),
			UserID:    models.Ptr(c.cfg.CurrentUserID),
			Likes:     0,
		})
	}

	return c.devInsert(ctx, "feed.StressTestDB", "stress", msgStressFailed, posts)
}

// NukeDB удаляет все посты с id > 0.
func (c *Container) NukeDB(ctx context.Context) error {
	const op = "feed.NukeDB"

	lg := log.From(ctx)
	c.startLoading()

	n, err := c.posts.DeleteAllPosts(ctx)
	metrics.FeedOperations.WithLabelValues("nuke", metrics.Result(err)).Inc()
	if err != nil {
		lg.Error("nuke_failed", slog.String("op", op), slog.String("err", err.Error()))
		c.fail(msgNukeFailed + err.Error())

		return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
	}

	lg.Warn("nuke_ok", slog.String("op", op), slog.Int64("deleted", n))

	return c.Fetch(ctx)
}

func (c *Container) devInsert(ctx context.Context, op, metric, failMsg string, posts []models.Post) error {
	lg := log.From(ctx)
	c.startLoading()

	err := c.posts.InsertPosts(ctx, posts)
	metrics.FeedOperations.WithLabelValues(metric, metrics.Result(err)).Inc()
	if err != nil {
		lg.Error(metric+"_failed", slog.String("op", op), slog.String("err", err.Error()))
		c.fail(failMsg + err.Error())

		return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
	}

	lg.Info(metric+"_ok", slog.String("op", op), slog.Int("inserted", len(posts)))

	return c.Fetch(ctx)
}

func (c *Container) startLoading() {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = true
		return s
	})
}
