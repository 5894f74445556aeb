package models

// Story — элемент ленты историй.
type Story struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	UserAvatarURL string `json:"user_avatar_url"`
	ImageURL      string `json:"image_url"`
	IsViewed      bool   `json:"is_viewed"`
}
