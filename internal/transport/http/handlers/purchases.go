package handlers

import (
	"net/http"

	"github.com/SonGokuFan1996/NeuroNet/internal/purchases"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
	"github.com/SonGokuFan1996/NeuroNet/internal/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

// Purchase — POST /purchases/{product}. Исход покупки всегда в теле;
// статус ответа повторяет его: отмена — 200, нет товара — 404, сбой — 502.
func (h *Handlers) Purchase(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	var req PurchaseRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := h.deps.Purchases.Buy(r.Context(), claims.UserID, chi.URLParam(r, "product"), req.Receipt)

	status := http.StatusOK
	switch out.Status {
	case purchases.OutcomeNotFound:
		status = http.StatusNotFound
	case purchases.OutcomeError:
		status = http.StatusBadGateway
	}

	writeJSON(w, status, out)
}

// SyncPurchases подтягивает статус подписки пользователя в ленту.
func (h *Handlers) SyncPurchases(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
		return
	}

	premium, err := h.deps.Purchases.Sync(r.Context(), claims.UserID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SyncResponse{Premium: premium})
}
