package handlers

import (
	"net/http"

	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
)

func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	res, err := h.deps.Moderation.Analyze(r.Context(), req.Text)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Result: string(res)})
}
