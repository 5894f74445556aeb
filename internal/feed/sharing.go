package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
	"github.com/SonGokuFan1996/NeuroNet/internal/share"
)

// ErrClosed — контейнер закрыт, фоновые задачи не принимаются.
var ErrClosed = errors.New("feed container closed")

// SharePost передаёт текст поста шареру в фоне (fire-and-forget).
// Результат отправки вызывающему не сообщается, сбои только логируются.
func (c *Container) SharePost(ctx context.Context, id int64) error {
	const op = "feed.SharePost"

	post, ok := c.store.Get().Post(id)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrPostNotFound)
	}

	text := share.PostText(post)
	bgCtx := log.Detach(ctx)

	c.bgMu.Lock()
	if c.store.Closed() {
		c.bgMu.Unlock()
		return fmt.Errorf("%s: %w", op, ErrClosed)
	}
	c.bg.Add(1)
	c.bgMu.Unlock()

	go func() {
		defer c.bg.Done()

		ctx, cancel := context.WithTimeout(bgCtx, shareTimeout)
		defer cancel()

		lg := log.From(ctx)
		if err := c.sharer.Share(ctx, text); err != nil {
			lg.Warn("share_post_failed",
				slog.String("op", op),
				slog.Int64("post_id", id),
				slog.String("err", err.Error()),
			)
			return
		}

		lg.Debug("share_post_ok", slog.String("op", op), slog.Int64("post_id", id))
	}()

	return nil
}
