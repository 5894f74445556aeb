// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает доменную ошибку (sentinel-ошибки контейнеров и хранилищ),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Текст, который видит пользователь ленты, живёт в снапшоте (ErrorMessage),
// поэтому тело ошибки здесь не дублирует его.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	"github.com/SonGokuFan1996/NeuroNet/internal/purchases"
	"github.com/SonGokuFan1996/NeuroNet/internal/scheduler"
	"github.com/SonGokuFan1996/NeuroNet/internal/storage"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrInvalidArgument — битое тело, параметр пути или query.
	ErrInvalidArgument = stderrors.New("invalid argument")
	// ErrUnauthenticated — маршрут требует Bearer-токен.
	ErrUnauthenticated = stderrors.New("unauthenticated")
	// ErrConflict — операция невозможна в текущем состоянии.
	ErrConflict = stderrors.New("conflict")
	// ErrUnavailable — зависимость не настроена.
	ErrUnavailable = stderrors.New("unavailable")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// err == nil — программная ошибка вызова: 500/internal, чтобы не послать
// "200 OK" с телом ошибки. Неизвестные ошибки — тоже 500 без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус и тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// classify — маппинг доменных ошибок:
//   - битые входные данные, неизвестное состояние темы -> 400
//   - нет записи или поста -> 404 (раньше, чем сбой источника: 404 обёрнут в него)
//   - неверные учётные данные, код 2FA, токен -> 401
//   - код 2FA без ожидающего входа, шторка без поста -> 409
//   - сбой источника данных или провайдера покупок -> 502
//   - имитация ошибки, не настроенная зависимость, закрытый контейнер -> 503
//   - отмена клиентом -> 499, дедлайн -> 504
//   - прочее -> 500/internal
func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case stderrors.Is(err, ErrInvalidArgument),
		stderrors.Is(err, storage.ErrInvalidArgument),
		stderrors.Is(err, purchases.ErrInvalidArgument),
		stderrors.Is(err, theme.ErrUnknownState):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, feed.ErrPostNotFound),
		stderrors.Is(err, storage.ErrNotFound),
		stderrors.Is(err, scheduler.ErrUnknownJob):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials", "invalid email or password"
	case stderrors.Is(err, auth.ErrInvalidCode):
		return http.StatusUnauthorized, "invalid_code", "invalid 2fa code"
	case stderrors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired", "token expired"
	case stderrors.Is(err, auth.ErrInvalidToken),
		stderrors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case stderrors.Is(err, auth.ErrNoChallenge),
		stderrors.Is(err, ErrConflict):
		return http.StatusConflict, "conflict", "conflict"
	case stderrors.Is(err, feed.ErrSimulated):
		return http.StatusServiceUnavailable, "simulated_error", "simulated error"
	case stderrors.Is(err, purchases.ErrNotConfigured),
		stderrors.Is(err, feed.ErrClosed),
		stderrors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "service unavailable"
	case stderrors.Is(err, feed.ErrDataSource):
		return http.StatusBadGateway, "data_source", "data source failure"
	}

	var apiErr *purchases.APIError
	if stderrors.As(err, &apiErr) {
		return http.StatusBadGateway, "purchases_provider", "purchases provider error"
	}

	return http.StatusInternalServerError, "internal", "internal error"
}
