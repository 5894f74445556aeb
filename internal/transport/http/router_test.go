package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/moderation"
	"github.com/SonGokuFan1996/NeuroNet/internal/purchases"
	"github.com/SonGokuFan1996/NeuroNet/internal/scheduler"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/handlers"
	"github.com/SonGokuFan1996/NeuroNet/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// fakePurchases — провайдер покупок с одним товаром и активной подпиской.
type fakePurchases struct {
	ent purchases.Entitlement
}

func (f *fakePurchases) Entitlement(context.Context, string) (purchases.Entitlement, error) {
	return f.ent, nil
}

func (f *fakePurchases) Products(context.Context, string, []string) ([]purchases.Product, error) {
	return []purchases.Product{{ID: purchases.ProductMonthly}}, nil
}

func (f *fakePurchases) Purchase(context.Context, string, string, string) (purchases.Entitlement, error) {
	return f.ent, nil
}

type testEnv struct {
	h     http.Handler
	posts *mocks.MockPostsStorage
	media *mocks.MockMediaStorage
	feed  *feed.Container
	auth  *auth.Container
	jobs  *scheduler.Scheduler
}

// newTestEnv собирает роутер на настоящих контейнерах с нулевыми задержками.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	posts := mocks.NewMockPostsStorage(ctrl)
	media := mocks.NewMockMediaStorage(ctrl)

	fc := feed.New(feed.Deps{Posts: posts}, config.FeedConfig{CurrentUserID: "user-1", Limit: 200})
	t.Cleanup(fc.Close)

	ac, err := auth.New(config.AuthConfig{
		JWTSecret:     "test-secret",
		Issuer:        "neuronet",
		Audience:      []string{"neuronet-app"},
		TokenTTL:      time.Hour,
		TwoFactorCode: "123456",
	})
	require.NoError(t, err)
	t.Cleanup(ac.Close)

	tc := theme.New()
	t.Cleanup(tc.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jobs, err := scheduler.New("UTC", logger)
	require.NoError(t, err)
	require.NoError(t, jobs.AddJob(scheduler.JobFeedRefresh, "@every 1h", scheduler.FeedRefreshJob(fc)))

	deps := handlers.Deps{
		Feed:  fc,
		Auth:  ac,
		Theme: tc,
		Moderation: moderation.New(config.ModerationConfig{
			Abuse:     []string{"kill"},
			Profanity: []string{"damn"},
			Scam:      []string{"send money"},
		}),
		Media:     media,
		Purchases: purchases.NewFlow(&fakePurchases{ent: purchases.Entitlement{Active: true}}, fc),
		Jobs:      jobs,
	}

	h := NewRouter(deps, Options{
		Logger:   logger,
		Timeout:  time.Second,
		BasePath: "/api",
		Tokens:   ac,
	})

	return &testEnv{h: h, posts: posts, media: media, feed: fc, auth: ac, jobs: jobs}
}

func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, "/api"+path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)

	return rr
}

// signIn выполняет вход без второго фактора и возвращает токен.
func (e *testEnv) signIn(t *testing.T) string {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/auth/sign-in", `{"email":"me@neuro.net","password":"pw"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[handlers.AuthResponse](t, rr)
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())

	return v
}

func errCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	resp := decode[apierrors.ErrorResponse](t, rr)
	require.NotEmpty(t, resp.Error.RequestID)

	return resp.Error.Code
}

// TestFeed_MockMode — мок-лента без обращений к источнику: лайк, создание, удаление.
func TestFeed_MockMode(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodPut, "/feed/settings", `{"mock_interface":true,"show_stories":false}`, "")
	require.Equal(t, http.StatusOK, rr.Code)

	st := decode[handlers.FeedResponse](t, rr)
	require.Len(t, st.Posts, 5)
	require.False(t, st.IsLoading)
	require.False(t, st.ShowStories)
	require.True(t, st.IsMockInterfaceEnabled)

	rr = e.do(t, http.MethodPost, "/feed/posts/1/like", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	st = decode[handlers.FeedResponse](t, rr)
	require.True(t, st.Posts[0].IsLikedByMe)
	require.Equal(t, 125, st.Posts[0].Likes)
	require.Contains(t, rr.Body.String(), `"is_liked_by_me":true`)

	rr = e.do(t, http.MethodPost, "/feed/posts", `{"content":"hello","tone":"/calm"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	st = decode[handlers.FeedResponse](t, rr)
	require.Len(t, st.Posts, 6)
	require.Equal(t, "hello", st.Posts[0].Content)

	rr = e.do(t, http.MethodDelete, "/feed/posts/2", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	st = decode[handlers.FeedResponse](t, rr)
	require.Len(t, st.Posts, 5)
	_, ok := e.feed.State().Post(2)
	require.False(t, ok)
}

// TestFeed_BadRequests — битые тела и параметры пути.
func TestFeed_BadRequests(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty_content", http.MethodPost, "/feed/posts", `{"content":""}`, http.StatusBadRequest, "invalid_argument"},
		{"unknown_field", http.MethodPost, "/feed/posts", `{"content":"x","mood":"y"}`, http.StatusBadRequest, "invalid_argument"},
		{"bad_id", http.MethodPost, "/feed/posts/abc/like", "", http.StatusBadRequest, "invalid_argument"},
		{"missing_post", http.MethodPost, "/feed/posts/999/like", "", http.StatusNotFound, "not_found"},
		{"share_missing", http.MethodPost, "/feed/posts/999/share", "", http.StatusNotFound, "not_found"},
		{"comments_missing", http.MethodPost, "/feed/posts/999/comments/open", "", http.StatusNotFound, "not_found"},
		{"unknown_tool", http.MethodPost, "/feed/dev/meltdown", "", http.StatusBadRequest, "invalid_argument"},
		{"comment_without_sheet", http.MethodPost, "/feed/comments", `{"content":"hi"}`, http.StatusConflict, "conflict"},
	}

	for _, tt := range tests {
		rr := e.do(t, tt.method, tt.path, tt.body, "")
		require.Equal(t, tt.wantStatus, rr.Code, tt.name)
		require.Equal(t, tt.wantCode, errCode(t, rr), tt.name)
	}
}

// TestFeed_RefreshAndErrors — сбой источника виден в снапшоте и снимается ClearError.
func TestFeed_RefreshAndErrors(t *testing.T) {
	e := newTestEnv(t)

	e.posts.EXPECT().ListPosts(gomock.Any(), 200).
		Return([]models.Post{{ID: models.Ptr[int64](7), Content: "remote"}}, nil)

	rr := e.do(t, http.MethodPost, "/feed/refresh", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	st := decode[handlers.FeedResponse](t, rr)
	require.Len(t, st.Posts, 1)
	require.Equal(t, "remote", st.Posts[0].Content)

	e.posts.EXPECT().ListPosts(gomock.Any(), 200).Return(nil, errors.New("timeout"))

	rr = e.do(t, http.MethodPost, "/feed/refresh", "", "")
	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "data_source", errCode(t, rr))

	st = decode[handlers.FeedResponse](t, e.do(t, http.MethodGet, "/feed", "", ""))
	require.NotNil(t, st.ErrorMessage)
	require.Equal(t, "Failed to load feed: timeout", *st.ErrorMessage)

	st = decode[handlers.FeedResponse](t, e.do(t, http.MethodPost, "/feed/error/clear", "", ""))
	require.Nil(t, st.ErrorMessage)
}

// TestFeed_SimulatedError — флаг режима разработчика даёт 503 без обращения к источнику.
func TestFeed_SimulatedError(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodPut, "/feed/dev", `{"simulate_error":true}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[handlers.FeedResponse](t, rr).SimulateError)

	rr = e.do(t, http.MethodPost, "/feed/refresh", "", "")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "simulated_error", errCode(t, rr))

	require.Equal(t, "Simulated Error: 500 Server Error", *e.feed.State().ErrorMessage)
}

// TestFeed_InfiniteLoading — запрос упирается в таймаут роутера.
func TestFeed_InfiniteLoading(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodPut, "/feed/dev", `{"simulate_infinite_loading":true}`, "")

	rr := e.do(t, http.MethodPost, "/feed/refresh", "", "")
	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
	require.True(t, e.feed.State().IsLoading)
}

// TestFeed_Comments — открыть шторку, добавить комментарий, закрыть.
func TestFeed_Comments(t *testing.T) {
	e := newTestEnv(t)

	e.do(t, http.MethodPut, "/feed/settings", `{"mock_interface":true}`, "")

	rr := e.do(t, http.MethodPost, "/feed/posts/3/comments/open", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	st := decode[handlers.FeedResponse](t, rr)
	require.True(t, st.IsCommentSheetVisible)
	require.Equal(t, int64(3), *st.ActivePostID)
	require.Len(t, st.ActivePostComments, 2)

	rr = e.do(t, http.MethodPost, "/feed/comments", `{"content":"me too"}`, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	st = decode[handlers.FeedResponse](t, rr)
	require.Len(t, st.ActivePostComments, 3)
	require.Equal(t, "me too", st.ActivePostComments[2].Content)

	st = decode[handlers.FeedResponse](t, e.do(t, http.MethodPost, "/feed/comments/dismiss", "", ""))
	require.False(t, st.IsCommentSheetVisible)
	require.Nil(t, st.ActivePostID)
}

// TestFeed_DevTools — flood идёт в источник даже в мок-режиме и перезагружает ленту.
func TestFeed_DevTools(t *testing.T) {
	e := newTestEnv(t)

	gomock.InOrder(
		e.posts.EXPECT().InsertPosts(gomock.Any(), gomock.Len(5)).Return(nil),
		e.posts.EXPECT().ListPosts(gomock.Any(), 200).Return([]models.Post{}, nil),
	)

	rr := e.do(t, http.MethodPost, "/feed/dev/flood", "", "")
	require.Equal(t, http.StatusOK, rr.Code)

	e.posts.EXPECT().DeleteAllPosts(gomock.Any()).Return(int64(0), errors.New("permission denied"))

	rr = e.do(t, http.MethodPost, "/feed/dev/nuke", "", "")
	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "Nuke failed: permission denied", *e.feed.State().ErrorMessage)
}

// TestAuth_TwoFactorFlow — вход с кодом: 202, неверный код, верный код с токеном.
func TestAuth_TwoFactorFlow(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodPut, "/auth/2fa", `{"enabled":true}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[handlers.AuthResponse](t, rr).TwoFactorEnabled)

	rr = e.do(t, http.MethodPost, "/auth/sign-in", `{"email":"not-an-email","password":"pw"}`, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "invalid_credentials", errCode(t, rr))

	rr = e.do(t, http.MethodPost, "/auth/sign-in", `{"email":"me@neuro.net","password":"pw"}`, "")
	require.Equal(t, http.StatusAccepted, rr.Code)
	resp := decode[handlers.AuthResponse](t, rr)
	require.Equal(t, auth.PhaseAwaitingSecondFactor, resp.Phase)
	require.True(t, resp.TwoFactorRequired)
	require.Empty(t, resp.Token)

	rr = e.do(t, http.MethodPost, "/auth/verify", `{"code":"000000"}`, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "invalid_code", errCode(t, rr))

	rr = e.do(t, http.MethodPost, "/auth/verify", `{"code":"123456"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = decode[handlers.AuthResponse](t, rr)
	require.Equal(t, auth.PhaseSignedIn, resp.Phase)
	require.NotEmpty(t, resp.Token)

	rr = e.do(t, http.MethodPost, "/auth/verify", `{"code":"123456"}`, "")
	require.Equal(t, http.StatusConflict, rr.Code)

	resp = decode[handlers.AuthResponse](t, e.do(t, http.MethodPost, "/auth/sign-out", "", ""))
	require.Equal(t, auth.PhaseSignedOut, resp.Phase)
	require.True(t, resp.TwoFactorEnabled)
}

// TestTheme — выбор состояния, тёмная схема и кастомная палитра.
func TestTheme(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodGet, "/theme", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[handlers.ThemeResponse](t, rr)
	require.Equal(t, theme.StateDefault, resp.State.Selected)
	require.Len(t, resp.States, len(theme.NeuroStates()))

	rr = e.do(t, http.MethodPut, "/theme", `{"selected_state":"BOREDOM","is_dark_mode":true}`, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.False(t, decode[handlers.ThemeResponse](t, e.do(t, http.MethodGet, "/theme", "", "")).State.IsDarkMode)

	rr = e.do(t, http.MethodPut, "/theme", `{"selected_state":"focus","is_dark_mode":true}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = decode[handlers.ThemeResponse](t, rr)
	require.Equal(t, theme.StateFocus, resp.State.Selected)
	require.True(t, resp.Scheme.Dark)

	rr = e.do(t, http.MethodGet, "/theme/custom?mood=anxious&neurotype=adhd", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, theme.GenerateCustomPalette(theme.MoodAnxious, theme.NeurotypeADHD), decode[theme.CustomPalette](t, rr))

	rr = e.do(t, http.MethodGet, "/theme/custom?mood=grumpy", "", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestExploreAndNotifications — статические разделы и фильтр уведомлений.
func TestExploreAndNotifications(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodGet, "/explore/categories/"+url.PathEscape("ADHD Hacks")+"/posts", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[[]handlers.PostResponse](t, rr), 3)

	rr = e.do(t, http.MethodGet, "/explore/topics", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, decode[[]models.Category](t, rr), 6)

	rr = e.do(t, http.MethodGet, "/notifications?type=like", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	items := decode[[]handlers.NotificationResponse](t, rr)
	require.Len(t, items, 1)
	require.Equal(t, models.NotificationLike, items[0].Type)
	require.Equal(t, "#E91E63", items[0].AccentColor)

	rr = e.do(t, http.MethodGet, "/notifications?type=bogus", "", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestModeration — исход классификации и пустой текст.
func TestModeration(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do(t, http.MethodPost, "/moderation/analyze", `{"text":"please SEND MONEY now"}`, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, string(moderation.BlockedAbuse), decode[handlers.AnalyzeResponse](t, rr).Result)

	rr = e.do(t, http.MethodPost, "/moderation/analyze", `{"text":""}`, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestUserRoutes_RequireToken — медиа и покупки только с токеном сессии.
func TestUserRoutes_RequireToken(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/media/presign", "/purchases/sync", "/purchases/" + purchases.ProductMonthly, "/admin/jobs/feed_refresh/run"} {
		rr := e.do(t, http.MethodPost, path, `{}`, "")
		require.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}

	rr := e.do(t, http.MethodPost, "/purchases/sync", "", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

// TestMediaPresign — URL выдаются под пользователя из токена.
func TestMediaPresign(t *testing.T) {
	e := newTestEnv(t)
	token := e.signIn(t)

	exp := time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC)
	e.media.EXPECT().
		PresignedPut(gomock.Any(), auth.MockUser().ID, "image/png", int64(1024)).
		Return("https://s3/upload", "https://cdn/u/1.png", exp, nil)

	rr := e.do(t, http.MethodPost, "/media/presign", `{"content_type":"image/png","size":1024}`, token)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[handlers.PresignResponse](t, rr)
	require.Equal(t, "https://s3/upload", resp.UploadURL)
	require.Equal(t, "https://cdn/u/1.png", resp.PublicURL)
	require.True(t, exp.Equal(resp.ExpiresAt))

	rr = e.do(t, http.MethodPost, "/media/presign", `{"content_type":"image/png","size":0}`, token)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// TestPurchases — покупка включает премиум ленты, отмена проходит молча.
func TestPurchases(t *testing.T) {
	e := newTestEnv(t)
	token := e.signIn(t)

	rr := e.do(t, http.MethodPost, "/purchases/"+purchases.ProductMonthly, `{"receipt":""}`, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, purchases.OutcomeCancelled, decode[purchases.Outcome](t, rr).Status)
	require.False(t, e.feed.State().IsPremium)

	rr = e.do(t, http.MethodPost, "/purchases/"+purchases.ProductLifetime, `{"receipt":"tok"}`, token)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Product not found", decode[purchases.Outcome](t, rr).Notice)

	rr = e.do(t, http.MethodPost, "/purchases/"+purchases.ProductMonthly, `{"receipt":"tok"}`, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[purchases.Outcome](t, rr).Premium)
	require.True(t, e.feed.State().IsPremium)

	rr = e.do(t, http.MethodPost, "/purchases/sync", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, decode[handlers.SyncResponse](t, rr).Premium)
}

// TestRequestID_Header — id возвращается в ответе.
func TestRequestID_Header(t *testing.T) {
	e := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()
	e.h.ServeHTTP(rr, req)

	require.Equal(t, "rid-1", rr.Header().Get("X-Request-Id"))

	st := decode[handlers.FeedResponse](t, rr)
	require.True(t, st.IsLoading, "до первой загрузки лента грузится")
}

// TestAdminJobs — список задач, ручной запуск и снятие с расписания.
func TestAdminJobs(t *testing.T) {
	e := newTestEnv(t)
	token := e.signIn(t)

	rr := e.do(t, http.MethodGet, "/admin/jobs", "", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(t, http.MethodGet, "/admin/jobs", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	jobs := decode[handlers.JobsResponse](t, rr).Jobs
	require.Len(t, jobs, 1)
	require.Equal(t, scheduler.JobFeedRefresh, jobs[0].Name)
	require.Equal(t, "@every 1h", jobs[0].Spec)

	// Ручной запуск перезагружает ленту из источника.
	e.posts.EXPECT().ListPosts(gomock.Any(), 200).Return([]models.Post{{ID: models.Ptr(int64(7)), Content: "fresh"}}, nil)

	rr = e.do(t, http.MethodPost, "/admin/jobs/feed_refresh/run", "", token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, e.feed.State().Posts, 1)
	require.False(t, e.feed.State().IsLoading)

	// Ошибка задачи отображается как ошибка источника.
	e.posts.EXPECT().ListPosts(gomock.Any(), 200).Return(nil, errors.New("db down"))

	rr = e.do(t, http.MethodPost, "/admin/jobs/feed_refresh/run", "", token)
	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Equal(t, "data_source", errCode(t, rr))

	rr = e.do(t, http.MethodDelete, "/admin/jobs/feed_refresh", "", token)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, e.jobs.Jobs())

	rr = e.do(t, http.MethodDelete, "/admin/jobs/feed_refresh", "", token)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", errCode(t, rr))

	rr = e.do(t, http.MethodPost, "/admin/jobs/feed_refresh/run", "", token)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

// sseEvent — одно событие потока: имя и JSON-данные.
type sseEvent struct {
	name string
	data string
}

// readEvents разбирает text/event-stream в канал событий.
func readEvents(body io.Reader) <-chan sseEvent {
	out := make(chan sseEvent, 16)

	go func() {
		defer close(out)

		var ev sseEvent
		sc := bufio.NewScanner(body)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			line := sc.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			case line == "" && ev.data != "":
				out <- ev
				ev = sseEvent{}
			}
		}
	}()

	return out
}

// TestFeedStream — первым приходит текущий снапшот, затем изменения;
// поток переживает таймаут обычных запросов.
func TestFeedStream(t *testing.T) {
	e := newTestEnv(t)

	srv := httptest.NewServer(e.h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/feed/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(resp.Body)

	next := func() handlers.FeedResponse {
		t.Helper()

		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream closed")
			require.Equal(t, "feed", ev.name)

			var st handlers.FeedResponse
			require.NoError(t, json.Unmarshal([]byte(ev.data), &st))
			return st
		case <-time.After(3 * time.Second):
			t.Fatal("no event")
			return handlers.FeedResponse{}
		}
	}

	first := next()
	require.True(t, first.IsLoading)
	require.True(t, first.ShowStories)

	// Дольше таймаута запросов (1s): поток не обрывается.
	time.Sleep(1200 * time.Millisecond)

	e.feed.ToggleStories(false)

	// Промежуточные снапшоты могут склеиться; последний доходит всегда.
	for st := next(); st.ShowStories; st = next() {
	}
}

// TestAuthStream — смена фазы видна подписчику потока.
func TestAuthStream(t *testing.T) {
	e := newTestEnv(t)

	srv := httptest.NewServer(e.h)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/auth/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	events := readEvents(resp.Body)

	phase := func() auth.Phase {
		t.Helper()

		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream closed")
			require.Equal(t, "auth", ev.name)

			var st handlers.AuthResponse
			require.NoError(t, json.Unmarshal([]byte(ev.data), &st))
			return st.Phase
		case <-time.After(3 * time.Second):
			t.Fatal("no event")
			return ""
		}
	}

	require.Equal(t, auth.PhaseSignedOut, phase())

	e.signIn(t)

	for p := phase(); p != auth.PhaseSignedIn; p = phase() {
	}
}
