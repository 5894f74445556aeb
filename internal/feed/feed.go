// feed — контейнер состояния ленты.
//
// Контейнер — единственный владелец снапшота FeedUIState. Каждая операция
// заменяет снапшот целиком через state.Store; наблюдатели получают снапшоты
// через Subscribe. После Close завершение «брошенных» операций ничего не меняет.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
	"github.com/SonGokuFan1996/NeuroNet/internal/share"
	"github.com/SonGokuFan1996/NeuroNet/internal/state"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"
)

var (
	// ErrPostNotFound — поста с таким id нет в текущем снапшоте.
	// Транспорт: 404.
	ErrPostNotFound = errors.New("post not found")
	// ErrDataSource — сбой внешнего источника; текст ошибки уже записан в снапшот.
	// Транспорт: 502.
	ErrDataSource = errors.New("data source failure")
	// ErrSimulated — сработал режим имитации ошибки.
	ErrSimulated = errors.New("simulated error")
)

// Тексты ошибок, которые видит пользователь.
const (
	msgSimulatedError = "Simulated Error: 500 Server Error"
	msgLoadFailed     = "Failed to load feed: "
	msgPostFailed     = "Failed to post: "
	msgDeleteFailed   = "Failed to delete: "
	msgCommentsFailed = "Failed to load comments: "
	msgFloodFailed    = "Flood failed: "
	msgStressFailed   = "Stress Test failed: "
	msgNukeFailed     = "Nuke failed: "
)

// shareTimeout — дедлайн фоновой отправки share.
const shareTimeout = 10 * time.Second

// Deps — внешние зависимости контейнера.
type Deps struct {
	// Posts — удалённый источник постов. Обязателен.
	Posts storage.PostsStorage
	// Comments — источник комментариев; nil — шторка всегда получает мок-комментарии.
	Comments storage.CommentsStorage
	// Sharer — канал шаринга; nil — share.Log.
	Sharer share.Sharer
}

// Container — контейнер состояния ленты.
type Container struct {
	store    *state.Store[FeedUIState]
	posts    storage.PostsStorage
	comments storage.CommentsStorage
	sharer   share.Sharer
	cfg      config.FeedConfig

	// Флаги режима разработчика живут вне снапшота.
	simulateError           atomic.Bool
	simulateInfiniteLoading atomic.Bool

	now  func() time.Time
	rand func(n int) int

	// bgMu упорядочивает запуск фоновых задач относительно Close.
	bgMu sync.Mutex
	bg   sync.WaitGroup
}

// New создаёт контейнер и загружает мок-истории.
// Первая загрузка ленты — отдельный вызов Fetch.
func New(deps Deps, cfg config.FeedConfig) *Container {
	sharer := deps.Sharer
	if sharer == nil {
		sharer = share.Log{}
	}

	c := &Container{
		store:    state.New(initialState()),
		posts:    deps.Posts,
		comments: deps.Comments,
		sharer:   sharer,
		cfg:      cfg,
		now:      time.Now,
		rand:     rand.IntN,
	}

	c.store.Update(func(s FeedUIState) FeedUIState {
		s.Stories = MockStories()
		return s
	})

	return c
}

// State возвращает текущий снапшот.
func (c *Container) State() FeedUIState {
	return c.store.Get()
}

// Subscribe — поток снапшотов (первым приходит текущий) и функция отписки.
func (c *Container) Subscribe() (<-chan FeedUIState, func()) {
	return c.store.Subscribe()
}

// Close закрывает контейнер и дожидается фоновых share-задач.
// Последующие изменения состояния игнорируются.
func (c *Container) Close() {
	c.bgMu.Lock()
	c.store.Close()
	c.bgMu.Unlock()

	c.bg.Wait()
}

// Fetch загружает ленту.
//
// Пути (в порядке приоритета):
//   - мок-режим: задержка MockDelay, затем фиксированные 5 постов, без ошибок;
//   - бесконечная загрузка: блокируется до отмены ctx, загрузка остаётся включённой;
//   - имитация ошибки: задержка ErrorDelay, затем msgSimulatedError;
//   - по умолчанию: Posts.ListPosts, сбой -> "Failed to load feed: <msg>".
func (c *Container) Fetch(ctx context.Context) error {
	const op = "feed.Fetch"

	lg := log.From(ctx)

	var mock bool
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = true
		s.ErrorMessage = nil
		mock = s.IsMockInterfaceEnabled
		return s
	})

	if mock {
		if err := sleep(ctx, c.cfg.MockDelay); err != nil {
			c.stopLoading()
			return fmt.Errorf("%s: %w", op, err)
		}

		c.store.Update(func(s FeedUIState) FeedUIState {
			s.Posts = MockFeedPosts()
			s.IsLoading = false
			return s
		})

		lg.Debug("fetch_posts_mock", slog.String("op", op))
		metrics.FeedOperations.WithLabelValues("fetch", metrics.ResultOK).Inc()

		return nil
	}

	if c.simulateInfiniteLoading.Load() {
		lg.Debug("fetch_posts_infinite", slog.String("op", op))
		<-ctx.Done()

		return fmt.Errorf("%s: %w", op, ctx.Err())
	}

	if c.simulateError.Load() {
		if err := sleep(ctx, c.cfg.ErrorDelay); err != nil {
			c.stopLoading()
			return fmt.Errorf("%s: %w", op, err)
		}

		c.fail(msgSimulatedError)
		lg.Warn("fetch_posts_simulated_error", slog.String("op", op))
		metrics.FeedOperations.WithLabelValues("fetch", metrics.ResultError).Inc()

		return fmt.Errorf("%s: %w", op, ErrSimulated)
	}

	lg.Debug("fetch_posts_request", slog.String("op", op), slog.Int("limit", c.cfg.Limit))

	posts, err := c.posts.ListPosts(ctx, c.cfg.Limit)
	metrics.FeedOperations.WithLabelValues("fetch", metrics.Result(err)).Inc()
	if err != nil {
		lg.Error("fetch_posts_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		c.fail(msgLoadFailed + err.Error())

		return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
	}

	c.store.Update(func(s FeedUIState) FeedUIState {
		s.Posts = posts
		s.IsLoading = false
		return s
	})

	lg.Info("fetch_posts_ok",
		slog.String("op", op),
		slog.Int("items", len(posts)),
	)

	return nil
}

// NewPost — данные нового поста.
type NewPost struct {
	Content  string
	Tone     string
	ImageURL *string
	VideoURL *string
}

// CreatePost создаёт пост.
//   - мок-режим: после задержки добавляет пост в начало ленты локально;
//     id строго больше любого существующего;
//   - иначе: вставка в источник (пустые URL -> nil, сообщество r/General), затем Fetch.
func (c *Container) CreatePost(ctx context.Context, in NewPost) error {
	const op = "feed.CreatePost"

	lg := log.From(ctx)

	var mock bool
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = true
		mock = s.IsMockInterfaceEnabled
		return s
	})

	if mock {
		if err := sleep(ctx, c.cfg.MockDelay); err != nil {
			c.stopLoading()
			return fmt.Errorf("%s: %w", op, err)
		}

		c.store.Update(func(s FeedUIState) FeedUIState {
			id := max(c.now().UnixMilli(), s.maxPostID()+1)
			post := models.Post{
				ID:         models.Ptr(id),
				UserID:     models.Ptr("Me"),
				UserAvatar: models.Ptr(AvatarURL("Me")),
				Content:    in.Content,
				Tone:       models.Ptr(in.Tone),
				ImageURL:   in.ImageURL,
				VideoURL:   in.VideoURL,
				Community:  models.Ptr("r/MyProfile"),
				Likes:      0,
				CreatedAt:  models.Ptr("Just now"),
			}

			posts := make([]models.Post, 0, len(s.Posts)+1)
			posts = append(posts, post)
			s.Posts = append(posts, s.Posts...)
			s.IsLoading = false
			return s
		})

		lg.Info("create_post_mock", slog.String("op", op))
		metrics.FeedOperations.WithLabelValues("create", metrics.ResultOK).Inc()

		return nil
	}

	post := models.Post{
		Content:   in.Content,
		Community: models.Ptr("r/General"),
		Tone:      models.Ptr(in.Tone),
		UserID:    models.Ptr(c.cfg.CurrentUserID),
		Likes:     0,
		ImageURL:  models.NonBlank(in.ImageURL),
		VideoURL:  models.NonBlank(in.VideoURL),
	}

	err := c.posts.InsertPost(ctx, post)
	metrics.FeedOperations.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		lg.Error("create_post_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		c.fail(msgPostFailed + err.Error())

		return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
	}

	lg.Info("create_post_ok", slog.String("op", op))

	return c.Fetch(ctx)
}

// DeletePost удаляет пост по id.
//   - мок-режим: после задержки DeleteDelay фильтрует ленту, порядок сохраняется;
//   - иначе: удаление в источнике, затем Fetch.
func (c *Container) DeletePost(ctx context.Context, id int64) error {
	const op = "feed.DeletePost"

	lg := log.From(ctx)

	var mock bool
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = true
		mock = s.IsMockInterfaceEnabled
		return s
	})

	if mock {
		if err := sleep(ctx, c.cfg.DeleteDelay); err != nil {
			c.stopLoading()
			return fmt.Errorf("%s: %w", op, err)
		}

		c.store.Update(func(s FeedUIState) FeedUIState {
			posts := make([]models.Post, 0, len(s.Posts))
			for _, p := range s.Posts {
				if !p.HasID(id) {
					posts = append(posts, p)
				}
			}
			s.Posts = posts
			s.IsLoading = false
			return s
		})

		lg.Info("delete_post_mock", slog.String("op", op), slog.Int64("post_id", id))
		metrics.FeedOperations.WithLabelValues("delete", metrics.ResultOK).Inc()

		return nil
	}

	err := c.posts.DeletePost(ctx, id)
	metrics.FeedOperations.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		lg.Error("delete_post_failed",
			slog.String("op", op),
			slog.Int64("post_id", id),
			slog.String("err", err.Error()),
		)
		c.fail(msgDeleteFailed + err.Error())

		return fmt.Errorf("%s: %w: %w", op, ErrDataSource, err)
	}

	lg.Info("delete_post_ok", slog.String("op", op), slog.Int64("post_id", id))

	return c.Fetch(ctx)
}

// ToggleLike — оптимистичное локальное переключение лайка без сети.
// Счётчик не уходит ниже нуля. Возвращает false, если поста нет.
func (c *Container) ToggleLike(id int64) bool {
	found := false

	c.store.Update(func(s FeedUIState) FeedUIState {
		posts := make([]models.Post, len(s.Posts))
		for i, p := range s.Posts {
			if p.HasID(id) {
				found = true
				p.IsLikedByMe = !p.IsLikedByMe
				if p.IsLikedByMe {
					p.Likes++
				} else {
					p.Likes = max(p.Likes-1, 0)
				}
			}
			posts[i] = p
		}
		s.Posts = posts
		return s
	})

	return found
}

// ClearError снимает текущую ошибку ленты.
func (c *Container) ClearError() {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.ErrorMessage = nil
		return s
	})
}

// fail записывает единственную текущую ошибку и снимает загрузку.
func (c *Container) fail(msg string) {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = false
		s.ErrorMessage = &msg
		return s
	})
}

// stopLoading снимает загрузку без ошибки: запрос отменён, задачи больше нет.
func (c *Container) stopLoading() {
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.IsLoading = false
		return s
	})
}

// sleep — задержка с учётом отмены контекста.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
