package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/models"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// TestOpenCommentSheet_Mock — мок-режим отдаёт пару комментариев с id поста.
func TestOpenCommentSheet_Mock(t *testing.T) {
	t.Parallel()

	c, _, _ := newContainerWithMocks(t)
	c.store.Update(func(s FeedUIState) FeedUIState { s.IsMockInterfaceEnabled = true; return s })

	require.NoError(t, c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](3)}))

	s := c.State()
	require.True(t, s.IsCommentSheetVisible)
	require.Equal(t, int64(3), *s.ActivePostID)
	require.Len(t, s.ActivePostComments, 2)
	require.Equal(t, "UserA", s.ActivePostComments[0].UserID)
	require.Equal(t, "Totally agree!", s.ActivePostComments[0].Content)
	require.Equal(t, int64(3), s.ActivePostComments[1].PostID)
}

// TestOpenCommentSheet_NoCommentsSource — без источника комментариев тоже мок-пара.
func TestOpenCommentSheet_NoCommentsSource(t *testing.T) {
	t.Parallel()

	c := New(Deps{}, testCfg())
	defer c.Close()

	require.NoError(t, c.OpenCommentSheet(context.Background(), models.Post{}))

	s := c.State()
	require.Nil(t, s.ActivePostID)
	require.Len(t, s.ActivePostComments, 2)
	require.Equal(t, int64(0), s.ActivePostComments[0].PostID)
}

// TestOpenCommentSheet_Remote — загрузка из источника по id поста.
func TestOpenCommentSheet_Remote(t *testing.T) {
	t.Parallel()

	c, _, comments := newContainerWithMocks(t)

	want := []models.Comment{{ID: models.Ptr[int64](10), PostID: 4, UserID: "u", Content: "c"}}
	comments.EXPECT().ListByPost(gomock.Any(), int64(4)).Return(want, nil)

	require.NoError(t, c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](4)}))
	require.Equal(t, want, c.State().ActivePostComments)
}

// TestOpenCommentSheet_RemoteFailure — ошибка источника попадает в снапшот, список пуст.
func TestOpenCommentSheet_RemoteFailure(t *testing.T) {
	t.Parallel()

	c, _, comments := newContainerWithMocks(t)
	comments.EXPECT().ListByPost(gomock.Any(), int64(4)).Return(nil, errors.New("timeout"))

	err := c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](4)})
	require.ErrorIs(t, err, ErrDataSource)

	s := c.State()
	require.Empty(t, s.ActivePostComments)
	require.Equal(t, "Failed to load comments: timeout", *s.ErrorMessage)
}

// TestOpenCommentSheet_DismissedBeforeLoad — закрытая шторка не получает опоздавшие комментарии.
func TestOpenCommentSheet_DismissedBeforeLoad(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.CommentsDelay = 50 * time.Millisecond
	c := New(Deps{}, cfg)
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](1)})
	}()

	require.Eventually(t, func() bool { return c.State().IsCommentSheetVisible }, time.Second, time.Millisecond)
	c.DismissCommentSheet()

	require.NoError(t, <-done)

	s := c.State()
	require.False(t, s.IsCommentSheetVisible)
	require.Nil(t, s.ActivePostID)
	require.Empty(t, s.ActivePostComments)
}

// TestOpenCommentSheet_SwitchedPost — загрузка для поста A не попадает в шторку поста B.
func TestOpenCommentSheet_SwitchedPost(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.CommentsDelay = 50 * time.Millisecond
	c := New(Deps{}, cfg)
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](1)})
	}()
	require.Eventually(t, func() bool { return c.State().IsCommentSheetVisible }, time.Second, time.Millisecond)

	// Переключаемся на пост 2 и фиксируем его собственный список.
	c.store.Update(func(s FeedUIState) FeedUIState {
		s.ActivePostID = models.Ptr[int64](2)
		s.ActivePostComments = []models.Comment{}
		return s
	})

	require.NoError(t, <-done)
	require.Empty(t, c.State().ActivePostComments)
	require.Equal(t, int64(2), *c.State().ActivePostID)
}

// TestOpenCommentSheet_CtxCanceled — отмена во время задержки возвращает ошибку контекста.
func TestOpenCommentSheet_CtxCanceled(t *testing.T) {
	t.Parallel()

	cfg := testCfg()
	cfg.CommentsDelay = time.Second
	c := New(Deps{}, cfg)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.OpenCommentSheet(ctx, models.Post{ID: models.Ptr[int64](1)})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, c.State().ActivePostComments)
}

// TestAddComment — локальный комментарий в конец списка, id больше существующих.
func TestAddComment(t *testing.T) {
	t.Parallel()

	c := New(Deps{}, testCfg())
	defer c.Close()

	require.False(t, c.AddComment("nobody listens"), "no active post")

	require.NoError(t, c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](5)}))
	c.now = func() time.Time { return time.UnixMilli(0) }

	require.True(t, c.AddComment("hello"))

	s := c.State()
	require.Len(t, s.ActivePostComments, 3)

	last := s.ActivePostComments[2]
	require.Equal(t, int64(3), *last.ID)
	require.Equal(t, int64(5), last.PostID)
	require.Equal(t, "Me", last.UserID)
	require.Equal(t, "hello", last.Content)
	require.Equal(t, "Just now", *last.CreatedAt)
	require.Equal(t, AvatarURL("Me"), *last.UserAvatar)
}

// TestDismissCommentSheet_KeepsComments — закрытие не очищает загруженный список.
func TestDismissCommentSheet_KeepsComments(t *testing.T) {
	t.Parallel()

	c := New(Deps{}, testCfg())
	defer c.Close()

	require.NoError(t, c.OpenCommentSheet(context.Background(), models.Post{ID: models.Ptr[int64](5)}))
	c.DismissCommentSheet()

	s := c.State()
	require.False(t, s.IsCommentSheetVisible)
	require.Nil(t, s.ActivePostID)
	require.Len(t, s.ActivePostComments, 2)
	require.False(t, c.AddComment("late"))
}
