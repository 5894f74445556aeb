// models содержит доменные сущности NeuroNet.
// Эти типы используются контейнерами состояния, слоями хранилища и транспорта.
package models

import "strings"

// Post — доменная сущность поста ленты.
//
// Особенности:
//   - ID — nil, пока сервер не присвоил идентификатор;
//   - CreatedAt — непрозрачная строка, не парсится;
//   - Likes — неотрицательное;
//   - IsLikedByMe — локальный флаг зрителя, в хранилище не попадает никогда.
type Post struct {
	ID         *int64  `json:"id,omitempty"`
	CreatedAt  *string `json:"created_at,omitempty"`
	Content    string  `json:"content"`
	UserID     *string `json:"user_id,omitempty"`
	Likes      int     `json:"likes"`
	Community  *string `json:"community,omitempty"`
	Tone       *string `json:"tone,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	VideoURL   *string `json:"video_url,omitempty"`
	UserAvatar *string `json:"user_avatar,omitempty"`

	IsLikedByMe bool `json:"-"`
}

// HasID сообщает, совпадает ли идентификатор поста с id.
func (p Post) HasID(id int64) bool {
	return p.ID != nil && *p.ID == id
}

// Ptr — хелпер для опциональных полей.
func Ptr[T any](v T) *T {
	return &v
}

// NonBlank возвращает nil для пустой (или из одних пробелов) строки.
func NonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}

	return s
}
