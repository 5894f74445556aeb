package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chanSharer — шарер, отдающий тексты в канал.
type chanSharer struct {
	got chan string
	err error
}

func (s *chanSharer) Share(_ context.Context, text string) error {
	s.got <- text
	return s.err
}

// TestSharePost — текст поста уходит шареру в фоне.
func TestSharePost(t *testing.T) {
	t.Parallel()

	sh := &chanSharer{got: make(chan string, 1)}
	c := New(Deps{Sharer: sh}, testCfg())
	defer c.Close()
	c.store.Update(func(s FeedUIState) FeedUIState { s.Posts = MockFeedPosts(); return s })

	require.NoError(t, c.SharePost(context.Background(), 5))

	select {
	case text := <-sh.got:
		require.Equal(t, "Check out this post on NeuroNet:\n\n"+MockFeedPosts()[4].Content, text)
	case <-time.After(time.Second):
		t.Fatal("share was not delivered")
	}
}

// TestSharePost_FailureIsSilent — сбой шарера не возвращается вызывающему.
func TestSharePost_FailureIsSilent(t *testing.T) {
	t.Parallel()

	sh := &chanSharer{got: make(chan string, 1), err: errors.New("telegram down")}
	c := New(Deps{Sharer: sh}, testCfg())
	c.store.Update(func(s FeedUIState) FeedUIState { s.Posts = MockFeedPosts(); return s })

	require.NoError(t, c.SharePost(context.Background(), 1))
	c.Close()

	require.Len(t, sh.got, 1)
	require.Nil(t, c.State().ErrorMessage)
}

// TestSharePost_UnknownPost — поста нет в снапшоте.
func TestSharePost_UnknownPost(t *testing.T) {
	t.Parallel()

	c := New(Deps{}, testCfg())
	defer c.Close()

	err := c.SharePost(context.Background(), 77)
	require.ErrorIs(t, err, ErrPostNotFound)
}

// TestSharePost_AfterClose — закрытый контейнер не запускает фоновых задач.
func TestSharePost_AfterClose(t *testing.T) {
	t.Parallel()

	sh := &chanSharer{got: make(chan string, 1)}
	c := New(Deps{Sharer: sh}, testCfg())
	c.store.Update(func(s FeedUIState) FeedUIState { s.Posts = MockFeedPosts(); return s })
	c.Close()

	err := c.SharePost(context.Background(), 1)
	require.ErrorIs(t, err, ErrClosed)
	require.Empty(t, sh.got)
}
