package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SonGokuFan1996/NeuroNet/internal/explore"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/notifications"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) Trending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, explore.Trending())
}

func (h *Handlers) Topics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, explore.Topics())
}

func (h *Handlers) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, explore.Categories())
}

func (h *Handlers) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		apierrors.WriteError(w, r, fmt.Errorf("category: %w", apierrors.ErrInvalidArgument))
		return
	}

	posts := explore.PostsForCategory(name)
	out := make([]PostResponse, len(posts))
	for i, p := range posts {
		out[i] = PostResponse{Post: p, IsLikedByMe: p.IsLikedByMe}
	}

	writeJSON(w, http.StatusOK, out)
}

// Notifications — GET /notifications?type=LIKE|COMMENT|SYSTEM; без type — все.
func (h *Handlers) Notifications(w http.ResponseWriter, r *http.Request) {
	items := notifications.Mock()

	if v := r.URL.Query().Get("type"); v != "" {
		t, err := models.ParseNotificationType(v)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("%w: %w", apierrors.ErrInvalidArgument, err))
			return
		}
		items = notifications.Filter(items, t)
	}

	writeJSON(w, http.StatusOK, notificationsResponse(items))
}
