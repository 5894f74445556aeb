package handlers

import (
	"net/http"

	"github.com/SonGokuFan1996/NeuroNet/internal/scheduler"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"

	"github.com/go-chi/chi/v5"
)

// JobScheduler — управление периодическими задачами (scheduler.Scheduler).
type JobScheduler interface {
	Jobs() []scheduler.JobInfo
	RunNow(name string) error
	RemoveJob(name string) error
}

// JobsResponse — зарегистрированные задачи.
type JobsResponse struct {
	Jobs []scheduler.JobInfo `json:"jobs"`
}

func (h *Handlers) ListJobs(w http.ResponseWriter, r *http.Request) {
	if h.deps.Jobs == nil {
		apierrors.WriteError(w, r, apierrors.ErrUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, JobsResponse{Jobs: h.deps.Jobs.Jobs()})
}

// RunJob запускает задачу вне расписания и дожидается её завершения.
func (h *Handlers) RunJob(w http.ResponseWriter, r *http.Request) {
	if h.deps.Jobs == nil {
		apierrors.WriteError(w, r, apierrors.ErrUnavailable)
		return
	}

	if err := h.deps.Jobs.RunNow(chi.URLParam(r, "name")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, JobsResponse{Jobs: h.deps.Jobs.Jobs()})
}

// RemoveJob снимает задачу с расписания до перезапуска сервиса.
func (h *Handlers) RemoveJob(w http.ResponseWriter, r *http.Request) {
	if h.deps.Jobs == nil {
		apierrors.WriteError(w, r, apierrors.ErrUnavailable)
		return
	}

	if err := h.deps.Jobs.RemoveJob(chi.URLParam(r, "name")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
