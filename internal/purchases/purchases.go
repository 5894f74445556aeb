// purchases — статус подписки и покупка премиума через RevenueCat.
//
// Service — контракт провайдера; RevenueCat ходит в REST API,
// Cached кэширует статус в Redis, Flow ведёт сценарий покупки
// и переносит статус в контейнер ленты.
package purchases

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserCancelled — пользователь отменил покупку. Показывать нечего.
	ErrUserCancelled = errors.New("purchase cancelled by user")
	// ErrNotConfigured — ключ RevenueCat не задан. Транспорт: 503.
	ErrNotConfigured = errors.New("purchases not configured")
	// ErrInvalidArgument — пустой идентификатор пользователя или товара. Транспорт: 400.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Entitlement — статус одного права доступа (например, premium).
type Entitlement struct {
	Active bool `json:"active"`
	// ExpiresAt — nil для бессрочной покупки или отсутствующего права.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ProductID string     `json:"product_id,omitempty"`
}

// Product — товар из текущих предложений.
type Product struct {
	ID         string `json:"id"`
	PackageID  string `json:"package_id"`
	OfferingID string `json:"offering_id"`
}

// Service — провайдер покупок.
type Service interface {
	// Entitlement возвращает статус настроенного права для пользователя.
	Entitlement(ctx context.Context, userID string) (Entitlement, error)
	// Products возвращает найденные товары из ids; отсутствующие пропускаются.
	Products(ctx context.Context, userID string, ids []string) ([]Product, error)
	// Purchase подтверждает покупку по токену магазина.
	Purchase(ctx context.Context, userID, productID, receipt string) (Entitlement, error)
}

// APIError — ответ RevenueCat с кодом не 2xx.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("revenuecat: status %d (code %d): %s", e.Status, e.Code, e.Message)
}

// Disabled — провайдер без ключа: любой вызов возвращает ErrNotConfigured.
type Disabled struct{}

var _ Service = Disabled{}

func (Disabled) Entitlement(context.Context, string) (Entitlement, error) {
	return Entitlement{}, ErrNotConfigured
}

func (Disabled) Products(context.Context, string, []string) ([]Product, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Purchase(context.Context, string, string, string) (Entitlement, error) {
	return Entitlement{}, ErrNotConfigured
}

// message — текст ошибки для уведомления пользователя.
func message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return err.Error()
}
