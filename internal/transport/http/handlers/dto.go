package handlers

import (
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/auth"
	"github.com/SonGokuFan1996/NeuroNet/internal/feed"
	"github.com/SonGokuFan1996/NeuroNet/internal/models"
	"github.com/SonGokuFan1996/NeuroNet/internal/notifications"
	"github.com/SonGokuFan1996/NeuroNet/internal/theme"
)

// PostResponse — пост вместе с локальным флагом зрителя.
// В домене IsLikedByMe не сериализуется; наружу он уходит только здесь.
type PostResponse struct {
	models.Post
	IsLikedByMe bool `json:"is_liked_by_me"`
}

// FeedResponse — снапшот ленты и флаги режима разработчика.
type FeedResponse struct {
	Posts        []PostResponse `json:"posts"`
	Stories      []models.Story `json:"stories"`
	IsLoading    bool           `json:"is_loading"`
	ErrorMessage *string        `json:"error_message"`
	IsPremium    bool           `json:"is_premium"`

	ShowStories            bool `json:"show_stories"`
	IsVideoAutoplayEnabled bool `json:"is_video_autoplay_enabled"`
	IsMockInterfaceEnabled bool `json:"is_mock_interface_enabled"`
	IsFakePremiumEnabled   bool `json:"is_fake_premium_enabled"`

	ActivePostID          *int64           `json:"active_post_id"`
	ActivePostComments    []models.Comment `json:"active_post_comments"`
	IsCommentSheetVisible bool             `json:"is_comment_sheet_visible"`

	SimulateError           bool `json:"simulate_error"`
	SimulateInfiniteLoading bool `json:"simulate_infinite_loading"`
}

func feedFromState(s feed.FeedUIState, simulateError, simulateInfinite bool) FeedResponse {
	posts := make([]PostResponse, len(s.Posts))
	for i, p := range s.Posts {
		posts[i] = PostResponse{Post: p, IsLikedByMe: p.IsLikedByMe}
	}

	return FeedResponse{
		Posts:                   posts,
		Stories:                 s.Stories,
		IsLoading:               s.IsLoading,
		ErrorMessage:            s.ErrorMessage,
		IsPremium:               s.IsPremium,
		ShowStories:             s.ShowStories,
		IsVideoAutoplayEnabled:  s.IsVideoAutoplayEnabled,
		IsMockInterfaceEnabled:  s.IsMockInterfaceEnabled,
		IsFakePremiumEnabled:    s.IsFakePremiumEnabled,
		ActivePostID:            s.ActivePostID,
		ActivePostComments:      s.ActivePostComments,
		IsCommentSheetVisible:   s.IsCommentSheetVisible,
		SimulateError:           simulateError,
		SimulateInfiniteLoading: simulateInfinite,
	}
}

// CreatePostRequest — тело POST /feed/posts.
type CreatePostRequest struct {
	Content  string  `json:"content"   validate:"required,max=5000"`
	Tone     string  `json:"tone"      validate:"max=64"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=2048"`
	VideoURL *string `json:"video_url" validate:"omitempty,max=2048"`
}

// AddCommentRequest — тело POST /feed/comments.
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// FeedSettingsRequest — частичное обновление переключателей ленты.
type FeedSettingsRequest struct {
	ShowStories   *bool `json:"show_stories"`
	VideoAutoplay *bool `json:"video_autoplay"`
	MockInterface *bool `json:"mock_interface"`
	FakePremium   *bool `json:"fake_premium"`
}

// DevSettingsRequest — флаги имитации сбоев.
type DevSettingsRequest struct {
	SimulateError           *bool `json:"simulate_error"`
	SimulateInfiniteLoading *bool `json:"simulate_infinite_loading"`
}

// AnalyzeRequest — тело POST /moderation/analyze.
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// AnalyzeResponse — исход модерации.
type AnalyzeResponse struct {
	Result string `json:"result"`
}

// CredentialsRequest — e-mail и пароль. Формат e-mail проверяет auth.
type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

// VerifyRequest — код второго фактора.
type VerifyRequest struct {
	Code string `json:"code" validate:"required,max=16"`
}

// TwoFactorRequest — включение или выключение второго фактора.
type TwoFactorRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// AuthResponse — снапшот аутентификации; токен только в фазе SignedIn.
type AuthResponse struct {
	Phase             auth.Phase   `json:"phase"`
	User              *models.User `json:"user"`
	Error             *string      `json:"error"`
	TwoFactorEnabled  bool         `json:"two_factor_enabled"`
	TwoFactorRequired bool         `json:"two_factor_required"`
	Token             string       `json:"token,omitempty"`
}

func authFromState(s auth.State) AuthResponse {
	return AuthResponse{
		Phase:             s.Phase,
		User:              s.User,
		Error:             s.Error,
		TwoFactorEnabled:  s.TwoFactorEnabled,
		TwoFactorRequired: s.TwoFactorRequired(),
		Token:             s.Token,
	}
}

// ThemeRequest — частичное обновление темы.
type ThemeRequest struct {
	SelectedState  *string `json:"selected_state"`
	IsDarkMode     *bool   `json:"is_dark_mode"`
	IsHighContrast *bool   `json:"is_high_contrast"`
	IsQuietMode    *bool   `json:"is_quiet_mode"`
}

// NeuroStateInfo — описание нейросостояния для выбора.
type NeuroStateInfo struct {
	ID          theme.NeuroState `json:"id"`
	Label       string           `json:"label"`
	Description string           `json:"description"`
	Seed        string           `json:"seed"`
}

// ThemeResponse — состояние темы, производная схема и доступные состояния.
type ThemeResponse struct {
	State  theme.ThemeState `json:"state"`
	Scheme theme.Scheme     `json:"scheme"`
	States []NeuroStateInfo `json:"states"`
}

func themeResponse(s theme.ThemeState) ThemeResponse {
	all := theme.NeuroStates()
	states := make([]NeuroStateInfo, len(all))
	for i, ns := range all {
		states[i] = NeuroStateInfo{
			ID:          ns,
			Label:       ns.Label(),
			Description: ns.Description(),
			Seed:        ns.SeedHex(),
		}
	}

	return ThemeResponse{
		State:  s,
		Scheme: theme.DeriveScheme(s),
		States: states,
	}
}

// NotificationResponse — уведомление с цветом иконки категории.
type NotificationResponse struct {
	models.NotificationItem
	AccentColor string `json:"accent_color"`
}

func notificationsResponse(items []models.NotificationItem) []NotificationResponse {
	out := make([]NotificationResponse, len(items))
	for i, it := range items {
		out[i] = NotificationResponse{NotificationItem: it, AccentColor: notifications.AccentColor(it.Type)}
	}

	return out
}

// PresignRequest — параметры загрузки медиа поста.
type PresignRequest struct {
	ContentType string `json:"content_type" validate:"required,max=128"`
	Size        int64  `json:"size"         validate:"required,gt=0"`
}

// PresignResponse — URL для PUT и публичный URL объекта.
type PresignResponse struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PurchaseRequest — токен покупки из магазина; пустой — отмена пользователем.
type PurchaseRequest struct {
	Receipt string `json:"receipt" validate:"max=4096"`
}

// SyncResponse — статус премиума после синхронизации.
type SyncResponse struct {
	Premium bool `json:"premium"`
}
