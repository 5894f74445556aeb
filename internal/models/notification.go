package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NotificationType — закрытый набор категорий уведомлений.
type NotificationType int

const (
	NotificationLike NotificationType = iota + 1
	NotificationComment
	NotificationSystem
)

// String возвращает каноническое имя категории.
func (t NotificationType) String() string {
	switch t {
	case NotificationLike:
		return "LIKE"
	case NotificationComment:
		return "COMMENT"
	case NotificationSystem:
		return "SYSTEM"
	default:
		return fmt.Sprintf("NotificationType(%d)", int(t))
	}
}

// ParseNotificationType разбирает имя категории без учёта регистра.
func ParseNotificationType(s string) (NotificationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIKE":
		return NotificationLike, nil
	case "COMMENT":
		return NotificationComment, nil
	case "SYSTEM":
		return NotificationSystem, nil
	default:
		return 0, fmt.Errorf("unknown notification type %q", s)
	}
}

// MarshalJSON кодирует категорию строкой.
func (t NotificationType) MarshalJSON() ([]byte, error) {
	if t < NotificationLike || t > NotificationSystem {
		return nil, fmt.Errorf("invalid notification type %d", int(t))
	}

	return json.Marshal(t.String())
}

// UnmarshalJSON принимает только известные категории.
func (t *NotificationType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseNotificationType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// NotificationItem — уведомление для экрана Alerts.
type NotificationItem struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Body  string           `json:"body"`
	Time  string           `json:"time"`
	Type  NotificationType `json:"type"`
}
