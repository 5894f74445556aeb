package handlers

import (
	"fmt"
	"net/http"

	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"

	"github.com/go-chi/chi/v5"
)

// writeFeed отвечает текущим снапшотом ленты.
func (h *Handlers) writeFeed(w http.ResponseWriter, status int) {
	simErr, simInfinite := h.deps.Feed.Simulation()
	writeJSON(w, status, feedFromState(h.deps.Feed.State(), simErr, simInfinite))
}

func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) RefreshFeed(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Feed.Fetch(r.Context()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	err := h.deps.Feed.CreatePost(r.Context(), feed.NewPost{
		Content:  req.Content,
		Tone:     req.Tone,
		ImageURL: req.ImageURL,
		VideoURL: req.VideoURL,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeFeed(w, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.deps.Feed.DeletePost(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if !h.deps.Feed.ToggleLike(id) {
		apierrors.WriteError(w, r, fmt.Errorf("like %d: %w", id, feed.ErrPostNotFound))
		return
	}

	h.writeFeed(w, http.StatusOK)
}

// SharePost ставит отправку в фон и сразу отвечает 202.
func (h *Handlers) SharePost(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.deps.Feed.SharePost(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// OpenComments открывает шторку поста из текущего снапшота и ждёт загрузки комментариев.
func (h *Handlers) OpenComments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	post, ok := h.deps.Feed.State().Post(id)
	if !ok {
		apierrors.WriteError(w, r, fmt.Errorf("comments %d: %w", id, feed.ErrPostNotFound))
		return
	}

	if err := h.deps.Feed.OpenCommentSheet(r.Context(), post); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) DismissComments(w http.ResponseWriter, r *http.Request) {
	h.deps.Feed.DismissCommentSheet()
	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req AddCommentRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if !h.deps.Feed.AddComment(req.Content) {
		apierrors.WriteError(w, r, fmt.Errorf("comment sheet closed: %w", apierrors.ErrConflict))
		return
	}

	h.writeFeed(w, http.StatusCreated)
}

// UpdateFeedSettings применяет только переданные переключатели.
// Переключение мок-режима перезагружает ленту в рамках запроса.
func (h *Handlers) UpdateFeedSettings(w http.ResponseWriter, r *http.Request) {
	var req FeedSettingsRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c := h.deps.Feed
	if req.ShowStories != nil {
		c.ToggleStories(*req.ShowStories)
	}
	if req.VideoAutoplay != nil {
		c.ToggleVideoAutoplay(*req.VideoAutoplay)
	}
	if req.FakePremium != nil {
		c.ToggleFakePremium(*req.FakePremium)
	}
	if req.MockInterface != nil {
		if err := c.ToggleMockInterface(r.Context(), *req.MockInterface); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}

	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) UpdateDevSettings(w http.ResponseWriter, r *http.Request) {
	var req DevSettingsRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if req.SimulateError != nil {
		h.deps.Feed.SetSimulateError(*req.SimulateError)
	}
	if req.SimulateInfiniteLoading != nil {
		h.deps.Feed.SetSimulateInfiniteLoading(*req.SimulateInfiniteLoading)
	}

	h.writeFeed(w, http.StatusOK)
}

// RunDevTool — flood | stress | nuke.
func (h *Handlers) RunDevTool(w http.ResponseWriter, r *http.Request) {
	var err error

	switch tool := chi.URLParam(r, "tool"); tool {
	case "flood":
		err = h.deps.Feed.FloodDB(r.Context())
	case "stress":
		err = h.deps.Feed.StressTestDB(r.Context())
	case "nuke":
		err = h.deps.Feed.NukeDB(r.Context())
	default:
		err = fmt.Errorf("dev tool %q: %w", tool, apierrors.ErrInvalidArgument)
	}

	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeFeed(w, http.StatusOK)
}

func (h *Handlers) ClearFeedError(w http.ResponseWriter, r *http.Request) {
	h.deps.Feed.ClearError()
	h.writeFeed(w, http.StatusOK)
}
