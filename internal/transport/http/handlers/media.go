package handlers

import (
	"net/http"

	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/middleware"
)

// PresignMedia выдаёт presigned PUT для картинки или видео поста.
// Объект кладётся под префикс пользователя из токена.
func (h *Handlers) PresignMedia(w http.ResponseWriter, r *http.Request) {
	if h.deps.Media == nil {
		apierrors.WriteError(w, r, apierrors.ErrUnavailable)
		return
	}

	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	var req PresignRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	uploadURL, publicURL, expiresAt, err := h.deps.Media.PresignedPut(r.Context(), claims.UserID, req.ContentType, req.Size)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PresignResponse{
		UploadURL: uploadURL,
		PublicURL: publicURL,
		ExpiresAt: expiresAt,
	})
}
