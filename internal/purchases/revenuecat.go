package purchases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// RevenueCat — клиент REST API v1.
type RevenueCat struct {
	baseURL     string
	apiKey      string
	platform    string
	entitlement string
	http        *http.Client
	now         func() time.Time
}

var _ Service = (*RevenueCat)(nil)

// NewRevenueCat создаёт клиент. nil httpClient — клиент с таймаутом 10s.
func NewRevenueCat(cfg config.PurchasesConfig, httpClient *http.Client) *RevenueCat {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return &RevenueCat{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		platform:    cfg.Platform,
		entitlement: cfg.Entitlement,
		http:        httpClient,
		now:         time.Now,
	}
}

type subscriberResponse struct {
	Subscriber struct {
		Entitlements map[string]struct {
			ExpiresDate       *time.Time `json:"expires_date"`
			ProductIdentifier string     `json:"product_identifier"`
		} `json:"entitlements"`
	} `json:"subscriber"`
}

type offeringsResponse struct {
	Offerings []struct {
		Identifier string `json:"identifier"`
		Packages   []struct {
			Identifier                string `json:"identifier"`
			PlatformProductIdentifier string `json:"platform_product_identifier"`
		} `json:"packages"`
	} `json:"offerings"`
}

type receiptRequest struct {
	AppUserID  string `json:"app_user_id"`
	FetchToken string `json:"fetch_token"`
	ProductID  string `json:"product_id"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Entitlement читает подписчика и статус настроенного права.
func (r *RevenueCat) Entitlement(ctx context.Context, userID string) (Entitlement, error) {
	const op = "purchases.RevenueCat.Entitlement"

	if userID == "" {
		return Entitlement{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var resp subscriberResponse
	if err := r.do(ctx, http.MethodGet, "/subscribers/"+url.PathEscape(userID), nil, &resp); err != nil {
		return Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	return r.entitlementFrom(resp), nil
}

// Products ищет товары ids среди пакетов всех предложений пользователя.
func (r *RevenueCat) Products(ctx context.Context, userID string, ids []string) ([]Product, error) {
	const op = "purchases.RevenueCat.Products"

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	var resp offeringsResponse
	if err := r.do(ctx, http.MethodGet, "/subscribers/"+url.PathEscape(userID)+"/offerings", nil, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, off := range resp.Offerings {
		for _, pkg := range off.Packages {
			id := pkg.PlatformProductIdentifier
			if !slices.Contains(ids, id) {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, Product{ID: id, PackageID: pkg.Identifier, OfferingID: off.Identifier})
		}
	}

	return out, nil
}

// Purchase отправляет токен покупки магазина в POST /receipts.
func (r *RevenueCat) Purchase(ctx context.Context, userID, productID, receipt string) (Entitlement, error) {
	const op = "purchases.RevenueCat.Purchase"

	if userID == "" || productID == "" || receipt == "" {
		return Entitlement{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	body := receiptRequest{AppUserID: userID, FetchToken: receipt, ProductID: productID}

	var resp subscriberResponse
	if err := r.do(ctx, http.MethodPost, "/receipts", body, &resp); err != nil {
		return Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	return r.entitlementFrom(resp), nil
}

func (r *RevenueCat) entitlementFrom(resp subscriberResponse) Entitlement {
	e, ok := resp.Subscriber.Entitlements[r.entitlement]
	if !ok {
		return Entitlement{}
	}

	return Entitlement{
		Active:    e.ExpiresDate == nil || e.ExpiresDate.After(r.now()),
		ExpiresAt: e.ExpiresDate,
		ProductID: e.ProductIdentifier,
	}
}

// do выполняет запрос и декодирует JSON-ответ в out.
func (r *RevenueCat) do(ctx context.Context, method, path string, in, out any) error {
	if r.apiKey == "" {
		return ErrNotConfigured
	}

	lg := log.From(ctx)

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.platform != "" {
		req.Header.Set("X-Platform", r.platform)
	}

	start := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	lg.Debug("revenuecat_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}

		var er errorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&er); err == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}

		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
