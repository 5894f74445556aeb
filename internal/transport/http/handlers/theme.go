package handlers

import (
	"fmt"
	"net/http"

	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
)

func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse(h.deps.Theme.State()))
}

// UpdateTheme применяет только переданные поля. Неизвестное состояние — 400,
// остальные поля при этом не меняются.
func (h *Handlers) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	c := h.deps.Theme
	if req.SelectedState != nil {
		s, err := theme.ParseNeuroState(*req.SelectedState)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
		if err := c.SetNeuroState(s); err != nil {
			apierrors.WriteError(w, r, err)
			return
		}
	}
	if req.IsDarkMode != nil {
		c.ToggleDarkMode(*req.IsDarkMode)
	}
	if req.IsHighContrast != nil {
		c.ToggleHighContrast(*req.IsHighContrast)
	}
	if req.IsQuietMode != nil {
		c.ToggleQuietMode(*req.IsQuietMode)
	}

	writeJSON(w, http.StatusOK, themeResponse(c.State()))
}

// CustomPalette — GET /theme/custom?mood=&neurotype=; пустые параметры — CALM и GENERAL.
func (h *Handlers) CustomPalette(w http.ResponseWriter, r *http.Request) {
	mood, neurotype := theme.MoodCalm, theme.NeurotypeGeneral

	q := r.URL.Query()
	if v := q.Get("mood"); v != "" {
		m, err := theme.ParseMood(v)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("%w: %w", apierrors.ErrInvalidArgument, err))
			return
		}
		mood = m
	}
	if v := q.Get("neurotype"); v != "" {
		n, err := theme.ParseNeurotype(v)
		if err != nil {
			apierrors.WriteError(w, r, fmt.Errorf("%w: %w", apierrors.ErrInvalidArgument, err))
			return
		}
		neurotype = n
	}

	writeJSON(w, http.StatusOK, theme.GenerateCustomPalette(mood, neurotype))
}
