// auth — контейнер состояния аутентификации с мок-входом и вторым фактором.
//
// Фазы: SignedOut -> (учётные данные) -> SignedIn
// или SignedOut -> AwaitingSecondFactor -> (код) -> SignedIn.
// «Требуется 2FA» выводится из фазы и не хранится отдельным флагом;
// TwoFactorEnabled лишь определяет, куда ведёт вход.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/config"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/log"
	"github.com/SonGokuFan1996/NeuroNet/internal/pkg/redact"
	"github.com/SonGokuFan1996/NeuroNet/internal/state"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials — e-mail некорректен или пароль пуст.
	// Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode — код второго фактора не совпал. Транспорт: 401.
	ErrInvalidCode = errors.New("invalid 2fa code")
	// ErrNoChallenge — код прислан вне фазы AwaitingSecondFactor. Транспорт: 409.
	ErrNoChallenge = errors.New("no pending 2fa challenge")
	// ErrInvalidToken — токен сессии некорректен. Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")
)

// Тексты ошибок, которые видит пользователь.
const (
	msgInvalidCode        = "Invalid 2FA Code"
	msgInvalidCredentials = "Invalid email or password"
)

// Phase — фаза входа.
type Phase string

const (
	PhaseSignedOut            Phase = "SIGNED_OUT"
	PhaseAwaitingSecondFactor Phase = "AWAITING_SECOND_FACTOR"
	PhaseSignedIn             Phase = "SIGNED_IN"
)

// State — снапшот аутентификации.
type State struct {
	Phase            Phase        `json:"phase"`
	User             *models.User `json:"user"`
	Error            *string      `json:"error"`
	TwoFactorEnabled bool         `json:"two_factor_enabled"`
	// Token — JWT текущей сессии; пуст вне SignedIn.
	Token string `json:"-"`

	// email ожидающего второго фактора входа.
	pendingEmail string
}

// TwoFactorRequired — вход ждёт код второго фактора.
func (s State) TwoFactorRequired() bool {
	return s.Phase == PhaseAwaitingSecondFactor
}

// MockUser — пользователь, которого возвращает любой успешный вход.
func MockUser() models.User {
	return models.User{
		ID:         "mock_user_id",
		Name:       "Mock User",
		AvatarURL:  "",
		IsVerified: true,
	}
}

// Container — контейнер состояния аутентификации.
type Container struct {
	store    *state.Store[State]
	cfg      config.AuthConfig
	codeHash []byte
	now      func() time.Time
}

// New создаёт контейнер. Код второго фактора хранится только как bcrypt-хэш.
func New(cfg config.AuthConfig) (*Container, error) {
	const op = "auth.New"

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.TwoFactorCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Container{
		store:    state.New(State{Phase: PhaseSignedOut}),
		cfg:      cfg,
		codeHash: hash,
		now:      time.Now,
	}, nil
}

func (c *Container) State() State {
	return c.store.Get()
}

func (c *Container) Subscribe() (<-chan State, func()) {
	return c.store.Subscribe()
}

func (c *Container) Close() {
	c.store.Close()
}

// SignIn — мок-вход: любой корректный e-mail и непустой пароль принимаются
// после сетевой задержки. При включённой 2FA вход переходит в ожидание кода.
func (c *Container) SignIn(ctx context.Context, email, password string) error {
	const op = "auth.SignIn"

	lg := log.From(ctx)

	norm, err := checkCredentials(email, password)
	if err != nil {
		lg.Warn("sign_in_rejected", slog.String("op", op), slog.String("email", redact.Email(email)))
		c.setError(msgInvalidCredentials)

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := sleep(ctx, c.cfg.NetworkDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var challenged bool
	c.store.Update(func(s State) State {
		if s.TwoFactorEnabled {
			challenged = true
			s.Phase = PhaseAwaitingSecondFactor
			s.pendingEmail = norm
			// Повторный вход с 2FA: прежняя сессия не переживает новый вызов.
			s.User = nil
			s.Token = ""
		}
		return s
	})

	if challenged {
		lg.Info("sign_in_challenge", slog.String("op", op), slog.String("email", redact.Email(norm)))
		return nil
	}

	if err := c.signIn(ctx, norm); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("sign_in_ok", slog.String("op", op), slog.String("email", redact.Email(norm)))

	return nil
}

// SignUp — мок-регистрация: сразу вход без второго фактора.
func (c *Container) SignUp(ctx context.Context, email, password string) error {
	const op = "auth.SignUp"

	lg := log.From(ctx)

	norm, err := checkCredentials(email, password)
	if err != nil {
		lg.Warn("sign_up_rejected", slog.String("op", op), slog.String("email", redact.Email(email)))
		c.setError(msgInvalidCredentials)

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := sleep(ctx, c.cfg.NetworkDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.signIn(ctx, norm); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("sign_up_ok", slog.String("op", op), slog.String("email", redact.Email(norm)))

	return nil
}

// VerifyTwoFactor проверяет код второго фактора после задержки.
// Неверный код оставляет фазу ожидания и пишет "Invalid 2FA Code".
func (c *Container) VerifyTwoFactor(ctx context.Context, code string) error {
	const op = "auth.VerifyTwoFactor"

	lg := log.From(ctx)

	if !c.store.Get().TwoFactorRequired() {
		return fmt.Errorf("%s: %w", op, ErrNoChallenge)
	}

	if err := sleep(ctx, c.cfg.VerifyDelay); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if bcrypt.CompareHashAndPassword(c.codeHash, []byte(strings.TrimSpace(code))) != nil {
		lg.Warn("verify_2fa_failed", slog.String("op", op), slog.String("code", redact.Code()))
		c.setError(msgInvalidCode)

		return fmt.Errorf("%s: %w", op, ErrInvalidCode)
	}

	st := c.store.Get()
	if !st.TwoFactorRequired() {
		// Сброшено во время проверки.
		return fmt.Errorf("%s: %w", op, ErrNoChallenge)
	}

	if err := c.signIn(ctx, st.pendingEmail); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("verify_2fa_ok", slog.String("op", op))

	return nil
}

// ToggleTwoFactor включает или выключает 2FA для будущих входов.
func (c *Container) ToggleTwoFactor(enabled bool) {
	c.store.Update(func(s State) State {
		s.TwoFactorEnabled = enabled
		return s
	})
}

// ResetTwoFactor — опция разработчика: выключает 2FA и отменяет ожидание кода.
func (c *Container) ResetTwoFactor() {
	c.store.Update(func(s State) State {
		s.TwoFactorEnabled = false
		if s.Phase == PhaseAwaitingSecondFactor {
			s.Phase = PhaseSignedOut
			s.pendingEmail = ""
		}
		return s
	})
}

// SignOut завершает сессию. Настройка 2FA сохраняется.
func (c *Container) SignOut() {
	c.store.Update(func(s State) State {
		s.Phase = PhaseSignedOut
		s.User = nil
		s.Token = ""
		s.pendingEmail = ""
		return s
	})
}

func (c *Container) ClearError() {
	c.store.Update(func(s State) State {
		s.Error = nil
		return s
	})
}

// signIn выпускает токен и переводит контейнер в SignedIn.
func (c *Container) signIn(ctx context.Context, email string) error {
	user := MockUser()

	token, err := c.issueToken(ctx, user.ID, email, c.now())
	if err != nil {
		return err
	}

	c.store.Update(func(s State) State {
		s.Phase = PhaseSignedIn
		s.User = &user
		s.Token = token
		s.Error = nil
		s.pendingEmail = ""
		return s
	})

	return nil
}

func (c *Container) setError(msg string) {
	c.store.Update(func(s State) State {
		s.Error = &msg
		return s
	})
}

// checkCredentials проверяет формат e-mail и непустой пароль, возвращает e-mail в нижнем регистре.
func checkCredentials(email, password string) (string, error) {
	norm := strings.TrimSpace(email)
	if norm == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if _, err := mail.ParseAddress(norm); err != nil {
		return "", ErrInvalidCredentials
	}

	return strings.ToLower(norm), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
