package purchases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// Товары экрана премиума.
const (
	ProductMonthly  = "neuro_monthly_no_ads"
	ProductLifetime = "neuro_lifetime_no_ads"
)

// Исходы покупки.
const (
	OutcomeOK        = "ok"
	OutcomeCancelled = "cancelled"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

const (
	noticeNotFound      = "Product not found"
	noticeFetchFailed   = "Error fetching products: "
	noticePurchaseError = "Purchase Error: "
)

// PremiumSetter — получатель реального статуса премиума (контейнер ленты).
type PremiumSetter interface {
	SetPremiumStatus(premium bool)
}

// Outcome — итог покупки. Notice — текст короткого уведомления; пуст, если показывать нечего.
type Outcome struct {
	Status  string `json:"status"`
	Notice  string `json:"notice,omitempty"`
	Premium bool   `json:"premium"`
}

// Flow — сценарий покупки и синхронизации премиума.
type Flow struct {
	svc     Service
	premium PremiumSetter
}

func NewFlow(svc Service, premium PremiumSetter) *Flow {
	return &Flow{svc: svc, premium: premium}
}

// Buy: поиск товара, подтверждение покупки, перенос статуса в ленту.
// Отмена пользователем (в том числе пустой токен магазина) проходит молча.
func (f *Flow) Buy(ctx context.Context, userID, productID, receipt string) Outcome {
	const op = "purchases.Flow.Buy"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("product_id", productID))

	out := f.buy(ctx, userID, productID, receipt)
	metrics.PurchaseOutcomes.WithLabelValues(out.Status).Inc()

	switch out.Status {
	case OutcomeOK:
		lg.Info("purchase_ok", slog.Bool("premium", out.Premium))
	case OutcomeCancelled:
		lg.Info("purchase_cancelled")
	default:
		lg.Warn("purchase_failed", slog.String("status", out.Status), slog.String("notice", out.Notice))
	}

	return out
}

func (f *Flow) buy(ctx context.Context, userID, productID, receipt string) Outcome {
	products, err := f.svc.Products(ctx, userID, []string{productID})
	if err != nil {
		return Outcome{Status: OutcomeError, Notice: noticeFetchFailed + message(err)}
	}

	found := false
	for _, p := range products {
		if p.ID == productID {
			found = true
			break
		}
	}
	if !found {
		return Outcome{Status: OutcomeNotFound, Notice: noticeNotFound}
	}

	if strings.TrimSpace(receipt) == "" {
		return Outcome{Status: OutcomeCancelled}
	}

	ent, err := f.svc.Purchase(ctx, userID, productID, receipt)
	if err != nil {
		if errors.Is(err, ErrUserCancelled) {
			return Outcome{Status: OutcomeCancelled}
		}

		return Outcome{Status: OutcomeError, Notice: noticePurchaseError + message(err)}
	}

	if ent.Active {
		f.premium.SetPremiumStatus(true)
	}

	return Outcome{Status: OutcomeOK, Premium: ent.Active}
}

// Sync читает статус у провайдера и применяет его к ленте.
func (f *Flow) Sync(ctx context.Context, userID string) (bool, error) {
	const op = "purchases.Flow.Sync"

	ent, err := f.svc.Entitlement(ctx, userID)
	if err != nil {
		log.From(ctx).Warn("entitlement_sync_failed",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return false, fmt.Errorf("%s: %w", op, err)
	}

	f.premium.SetPremiumStatus(ent.Active)

	return ent.Active, nil
}
