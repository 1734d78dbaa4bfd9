package storage

import (
	"context"

	"github.com/iudanet/taskkeeper/internal/models"
)

// TodoUpdate описывает частичное обновление задачи.
// nil-поля не изменяются.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string
}

// TodoStorage defines interface for todo persistence.
// Каждая операция принимает userID владельца и фильтрует по нему:
// чужая запись неотличима от несуществующей (ErrTodoNotFound).
type TodoStorage interface {
	// CreateTodo inserts a new todo
	CreateTodo(ctx context.Context, todo *models.Todo) error

	// ListTodosByUser returns all todos of the user, newest-created first
	ListTodosByUser(ctx context.Context, userID string) ([]*models.Todo, error)

	// GetTodo retrieves a todo owned by the user
	// Returns ErrTodoNotFound if it doesn't exist or belongs to someone else
	GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)

	// UpdateTodo applies a partial update and refreshes updated_at
	// Returns the updated todo or ErrTodoNotFound
	UpdateTodo(ctx context.Context, userID, todoID string, upd TodoUpdate) (*models.Todo, error)

	// DeleteTodo removes a todo owned by the user
	// Returns ErrTodoNotFound if it doesn't exist or belongs to someone else
	DeleteTodo(ctx context.Context, userID, todoID string) error

	// ToggleTodoCompleted flips the completed flag and refreshes updated_at
	// Returns the updated todo or ErrTodoNotFound
	ToggleTodoCompleted(ctx context.Context, userID, todoID string) (*models.Todo, error)
}
