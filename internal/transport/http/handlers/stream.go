package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	logctx "github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
)

// streamRetry — пауза переподключения для EventSource-клиента.
const streamRetry = 3 * time.Second

// FeedStream — снапшоты ленты как text/event-stream (событие "feed").
func (h *Handlers) FeedStream(w http.ResponseWriter, r *http.Request) {
	streamSnapshots(w, r, "feed", h.deps.Feed.Subscribe, func(s feed.FeedUIState) any {
		simErr, simInf := h.deps.Feed.Simulation()
		return feedFromState(s, simErr, simInf)
	})
}

// AuthStream — снапшоты авторизации (событие "auth").
func (h *Handlers) AuthStream(w http.ResponseWriter, r *http.Request) {
	streamSnapshots(w, r, "auth", h.deps.Auth.Subscribe, func(s auth.State) any {
		return authFromState(s)
	})
}

// ThemeStream — состояние темы вместе с производной схемой (событие "theme").
func (h *Handlers) ThemeStream(w http.ResponseWriter, r *http.Request) {
	streamSnapshots(w, r, "theme", h.deps.Theme.Subscribe, func(s theme.ThemeState) any {
		return themeResponse(s)
	})
}

// streamSnapshots пишет в ответ текущий снапшот и каждое следующее изменение.
// Промежуточные снапшоты медленного клиента пропускаются, последний доходит всегда.
// Поток завершается с отключением клиента или закрытием контейнера.
func streamSnapshots[T any](w http.ResponseWriter, r *http.Request, event string, subscribe func() (<-chan T, func()), render func(T) any) {
	lg := logctx.From(r.Context())
	rc := http.NewResponseController(w)

	ch, unsubscribe := subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "retry: %d\n\n", streamRetry.Milliseconds()); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		lg.Warn("stream_flush_unsupported", slog.String("event", event), slog.String("err", err.Error()))
		return
	}

	lg.Debug("stream_open", slog.String("event", event))
	defer lg.Debug("stream_closed", slog.String("event", event))

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-ch:
			if !ok {
				return
			}

			data, err := json.Marshal(render(snap))
			if err != nil {
				lg.Error("stream_encode_failed", slog.String("event", event), slog.String("err", err.Error()))
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
