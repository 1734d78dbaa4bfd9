package api

import "time"

// TodoResponse представляет задачу в API ответах
type TodoResponse struct {
	ID          string    `json:"id"`                    // UUID задачи
	UserID      string    `json:"user_id"`               // ID владельца
	Title       string    `json:"title"`                 // заголовок
	Description string    `json:"description,omitempty"` // описание
	Completed   bool      `json:"completed"`             // флаг выполнения
	Priority    string    `json:"priority"`              // low / medium / high
	DueDate     string    `json:"due_date,omitempty"`    // дата YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`            // время создания
	UpdatedAt   time.Time `json:"updated_at"`            // время изменения
}

// CreateTodoRequest представляет запрос на создание задачи
type CreateTodoRequest struct {
	Title       string `json:"title"`                 // обязательный заголовок
	Description string `json:"description,omitempty"` // описание (опционально)
	Priority    string `json:"priority,omitempty"`    // по умолчанию "medium"
	DueDate     string `json:"due_date,omitempty"`    // дата YYYY-MM-DD (опционально)
}

// UpdateTodoRequest представляет частичное обновление задачи.
// nil-поля не изменяются.
type UpdateTodoRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}
