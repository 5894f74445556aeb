package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты для internal/pkg/log.
//
// Важно: часть тестов меняет slog.Default(), поэтому они намеренно НЕ используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestFrom_ReturnsDefault_WhenNoLoggerInContext —
// если логгер не положен в контекст, From возвращает текущий slog.Default().
func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

// TestIntoAndFrom_RoundTrip — Into кладёт логгер, From извлекает его 1:1.
func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

// TestFrom_WrongTypeOrNil — устойчивость к «мусорным» значениям и *slog.Logger(nil).
func TestFrom_WrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

// TestOp_AddsAttribute — Op добавляет атрибут op к логгеру из контекста.
func TestOp_AddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := Into(context.Background(), l)

	Op(ctx, "feed.Fetch").Info("fetch_posts_ok")

	require.Contains(t, buf.String(), "op=feed.Fetch")
	require.Contains(t, buf.String(), "fetch_posts_ok")
}

// TestDetach_KeepsLoggerDropsCancel — Detach сохраняет логгер, но не отмену родителя.
func TestDetach_KeepsLoggerDropsCancel(t *testing.T) {
	l := newSilent()
	parent, cancel := context.WithTimeout(Into(context.Background(), l), time.Millisecond)
	cancel()

	detached := Detach(parent)

	require.Equal(t, l, From(detached))
	require.NoError(t, detached.Err())
	_, hasDeadline := detached.Deadline()
	require.False(t, hasDeadline)
}
