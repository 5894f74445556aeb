package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/handlers"
	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
	// Tokens проверяет Bearer-токены; nil — все запросы анонимные.
	Tokens middleware.TokenValidator
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(deps handlers.Deps, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),
		middleware.RequestID(), // до логирования: id попадает в логгер запроса
		middleware.Logging(opts.Logger),
		middleware.Metrics(),
		middleware.AuthBearer(opts.Tokens),
	)

	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	h := handlers.New(deps)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// feed
	r.Get("/feed", h.GetFeed)
	r.Post("/feed/refresh", h.RefreshFeed)
	r.Post("/feed/posts", h.CreatePost)
	r.Delete("/feed/posts/{id}", h.DeletePost)
	r.Post("/feed/posts/{id}/like", h.ToggleLike)
	r.Post("/feed/posts/{id}/share", h.SharePost)
	r.Post("/feed/posts/{id}/comments/open", h.OpenComments)
	r.Post("/feed/comments/dismiss", h.DismissComments)
	r.Post("/feed/comments", h.AddComment)
	r.Put("/feed/settings", h.UpdateFeedSettings)
	r.Put("/feed/dev", h.UpdateDevSettings)
	r.Post("/feed/dev/{tool}", h.RunDevTool)
	r.Post("/feed/error/clear", h.ClearFeedError)

	// moderation
	r.Post("/moderation/analyze", h.Analyze)

	// auth
	r.Get("/auth", h.GetAuth)
	r.Post("/auth/sign-in", h.SignIn)
	r.Post("/auth/sign-up", h.SignUp)
	r.Post("/auth/verify", h.VerifyTwoFactor)
	r.Put("/auth/2fa", h.ToggleTwoFactor)
	r.Post("/auth/2fa/reset", h.ResetTwoFactor)
	r.Post("/auth/sign-out", h.SignOut)
	r.Post("/auth/error/clear", h.ClearAuthError)

	// theme
	r.Get("/theme", h.GetTheme)
	r.Put("/theme", h.UpdateTheme)
	r.Get("/theme/custom", h.CustomPalette)

	// Потоки снапшотов (text/event-stream).
	r.Get("/feed/stream", h.FeedStream)
	r.Get("/auth/stream", h.AuthStream)
	r.Get("/theme/stream", h.ThemeStream)

	// explore, notifications
	r.Get("/explore/trending", h.Trending)
	r.Get("/explore/topics", h.Topics)
	r.Get("/explore/categories", h.Categories)
	r.Get("/explore/categories/{name}/posts", h.CategoryPosts)
	r.Get("/notifications", h.Notifications)

	// Маршруты пользователя: только с проверенным токеном.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())

		r.Post("/media/presign", h.PresignMedia)
		r.Post("/purchases/sync", h.SyncPurchases)
		r.Post("/purchases/{product}", h.Purchase)

		r.Get("/admin/jobs", h.ListJobs)
		r.Post("/admin/jobs/{name}/run", h.RunJob)
		r.Delete("/admin/jobs/{name}", h.RemoveJob)
	})
}
