// notifications — источник списка уведомлений (мок).
package notifications

import "github.com/SonGokuFan1996/NeuroNet/internal/models"

// Mock — три фиксированных уведомления, новые первыми.
func Mock() []models.NotificationItem {
	return []models.NotificationItem{
		{ID: "1", Title: "New Badge Earned", Body: "You verified your humanity!", Time: "10m ago", Type: models.NotificationSystem},
		{ID: "2", Title: "Alex_Stims liked your post", Body: "The one about mechanical keyboards.", Time: "1h ago", Type: models.NotificationLike},
		{ID: "3", Title: "Reply from DinoLover99", Body: "I totally agree with that!", Time: "2h ago", Type: models.NotificationComment},
	}
}

// Filter оставляет уведомления одной категории с сохранением порядка.
func Filter(items []models.NotificationItem, t models.NotificationType) []models.NotificationItem {
	out := make([]models.NotificationItem, 0, len(items))
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}

	return out
}

// AccentColor — цвет иконки категории.
func AccentColor(t models.NotificationType) string {
	switch t {
	case models.NotificationLike:
		return "#E91E63"
	case models.NotificationComment:
		return "#4F46E5"
	default:
		return "#0D9488"
	}
}
