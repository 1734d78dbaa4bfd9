package models

import "time"

// Priority levels for a todo item.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Todo представляет задачу пользователя
type Todo struct {
	ID          string    `json:"id"`          // UUID задачи
	UserID      string    `json:"user_id"`     // ID владельца (subject из токена)
	Title       string    `json:"title"`       // заголовок, 1-255 символов
	Description string    `json:"description"` // описание (опционально, до 1000 символов)
	Completed   bool      `json:"completed"`   // флаг выполнения
	Priority    string    `json:"priority"`    // low / medium / high
	DueDate     string    `json:"due_date"`    // дата в формате YYYY-MM-DD (опционально)
	CreatedAt   time.Time `json:"created_at"`  // время создания
	UpdatedAt   time.Time `json:"updated_at"`  // время последнего изменения
}
