package handlers

import (
	"net/http"

	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"
)

func (h *Handlers) writeAuth(w http.ResponseWriter, status int) {
	writeJSON(w, status, authFromState(h.deps.Auth.State()))
}

func (h *Handlers) GetAuth(w http.ResponseWriter, r *http.Request) {
	h.writeAuth(w, http.StatusOK)
}

// SignIn — при включённом втором факторе отвечает 202 и фазой AWAITING_SECOND_FACTOR.
func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.deps.Auth.SignIn(r.Context(), req.Email, req.Password); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if h.deps.Auth.State().TwoFactorRequired() {
		h.writeAuth(w, http.StatusAccepted)
		return
	}

	h.writeAuth(w, http.StatusOK)
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.deps.Auth.SignUp(r.Context(), req.Email, req.Password); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeAuth(w, http.StatusCreated)
}

func (h *Handlers) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	if err := h.deps.Auth.VerifyTwoFactor(r.Context(), req.Code); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.writeAuth(w, http.StatusOK)
}

func (h *Handlers) ToggleTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req TwoFactorRequest
	if err := h.decodeValid(r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.deps.Auth.ToggleTwoFactor(*req.Enabled)
	h.writeAuth(w, http.StatusOK)
}

func (h *Handlers) ResetTwoFactor(w http.ResponseWriter, r *http.Request) {
	h.deps.Auth.ResetTwoFactor()
	h.writeAuth(w, http.StatusOK)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	h.deps.Auth.SignOut()
	h.writeAuth(w, http.StatusOK)
}

func (h *Handlers) ClearAuthError(w http.ResponseWriter, r *http.Request) {
	h.deps.Auth.ClearError()
	h.writeAuth(w, http.StatusOK)
}
