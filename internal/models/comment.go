package models

// Comment — комментарий к посту.
// PostID обязателен; остальные опциональные поля могут отсутствовать в ответе сервера.
type Comment struct {
	ID         *int64  `json:"id,omitempty"          bson:"id,omitempty"`
	PostID     int64   `json:"post_id"               bson:"post_id"`
	UserID     string  `json:"user_id"               bson:"user_id"`
	Content    string  `json:"content"               bson:"content"`
	CreatedAt  *string `json:"created_at,omitempty"  bson:"created_at,omitempty"`
	UserAvatar *string `json:"user_avatar,omitempty" bson:"user_avatar,omitempty"`
}
