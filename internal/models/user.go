package models

// User — профиль текущего пользователя.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url"`
	IsVerified bool   `json:"is_verified"`
}

// Category — раздел Explore с цветом плашки (#RRGGBB).
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
