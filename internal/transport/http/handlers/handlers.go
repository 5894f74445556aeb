package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	"github.com/SonGokuFan1996/NeuroNet/internal/moderation"
	"github.com/SonGokuFan1996/NeuroNet/internal/purchases"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
	apierrors "github.com/SonGokuFan1996/NeuroNet/internal/transport/http/errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Deps — контейнеры и сервисы, которые обслуживает REST-слой.
type Deps struct {
	Feed       *feed.Container
	Auth       *auth.Container
	Theme      *theme.Container
	Moderation *moderation.Classifier
	// Media — nil, если S3 не настроен: /media/presign отвечает 503.
	Media     storage.MediaStorage
	Purchases *purchases.Flow
	// Jobs — nil, если планировщик не запущен: /admin/jobs отвечает 503.
	Jobs JobScheduler
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	deps     Deps
	validate *validator.Validate
}

func New(deps Deps) *Handlers {
	return &Handlers{
		deps:     deps,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// decodeValid разбирает тело и проверяет теги validate.
// Любая ошибка — apierrors.ErrInvalidArgument.
func (h *Handlers) decodeValid(r *http.Request, value any) error {
	if err := decodeStrict(r, value); err != nil {
		return fmt.Errorf("decode: %w: %w", apierrors.ErrInvalidArgument, err)
	}

	if err := h.validate.Struct(value); err != nil {
		return fmt.Errorf("validate: %w: %w", apierrors.ErrInvalidArgument, err)
	}

	return nil
}

// idParam читает положительный int64 из параметра пути.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: %w", name, apierrors.ErrInvalidArgument)
	}

	return id, nil
}
