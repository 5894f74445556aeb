// moderation — keyword-классификатор текста постов.
//
// Приоритет исходов:
//  1. ключевые слова угроз или ссылки/просьбы о деньгах -> BlockedAbuse;
//  2. нецензурная лексика -> FlaggedProfanity;
//  3. иначе -> Safe.
//
// Сопоставление — поиск подстроки без учёта регистра.
package moderation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
)

// Result — исход классификации.
type Result string

const (
	Safe             Result = "SAFE"
	FlaggedProfanity Result = "FLAGGED_PROFANITY"
	BlockedAbuse     Result = "BLOCKED_ABUSE"
)

// Classifier хранит словари в нижнем регистре и имитируемую задержку.
type Classifier struct {
	abuse     []string
	profanity []string
	scam      []string
	delay     time.Duration
}

// New собирает классификатор из конфигурации.
func New(cfg config.ModerationConfig) *Classifier {
	return &Classifier{
		abuse:     lower(cfg.Abuse),
		profanity: lower(cfg.Profanity),
		scam:      lower(cfg.Scam),
		delay:     cfg.Delay,
	}
}

// Classify — чистая часть: один проход, без задержки.
func (c *Classifier) Classify(text string) Result {
	t := strings.ToLower(text)

	switch {
	case containsAny(t, c.abuse), containsAny(t, c.scam):
		return BlockedAbuse
	case containsAny(t, c.profanity):
		return FlaggedProfanity
	default:
		return Safe
	}
}

// Analyze имитирует внешний вызов: ждёт задержку и классифицирует текст.
// При отмене ctx возвращает ctx.Err() без результата.
func (c *Classifier) Analyze(ctx context.Context, text string) (Result, error) {
	const op = "moderation.Analyze"

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	res := c.Classify(text)
	metrics.ModerationOutcomes.WithLabelValues(string(res)).Inc()
	log.Op(ctx, op).Debug("moderation_classified", slog.String("result", string(res)), slog.Int("len", len(text)))

	return res, nil
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}

	return false
}

func lower(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}

	return out
}
