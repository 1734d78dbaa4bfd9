package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
)

// CreateTodo inserts a new todo
func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, description, completed, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Description,
		boolToInt(todo.Completed),
		todo.Priority,
		todo.DueDate,
		todo.CreatedAt.Unix(),
		todo.UpdatedAt.Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// ListTodosByUser returns all todos of the user, newest-created first
func (s *Storage) ListTodosByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		FROM todos
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// GetTodo retrieves a todo owned by the user.
// Чужая задача неотличима от несуществующей.
func (s *Storage) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	query := `
		SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at
		FROM todos
		WHERE id = ? AND user_id = ?
	`

	todo, err := scanTodo(s.db.QueryRowContext(ctx, query, todoID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTodoNotFound
		}
		return nil, err
	}

	return todo, nil
}

// UpdateTodo applies a partial update and refreshes updated_at.
// Проверка владельца и запись выполняются одним UPDATE, поэтому
// конкурентное удаление приводит к нулю затронутых строк (ErrTodoNotFound),
// а не к порче данных.
func (s *Storage) UpdateTodo(ctx context.Context, userID, todoID string, upd storage.TodoUpdate) (*models.Todo, error) {
	setClauses := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)

	if upd.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Completed != nil {
		setClauses = append(setClauses, "completed = ?")
		args = append(args, boolToInt(*upd.Completed))
	}
	if upd.Priority != nil {
		setClauses = append(setClauses, "priority = ?")
		args = append(args, *upd.Priority)
	}
	if upd.DueDate != nil {
		setClauses = append(setClauses, "due_date = ?")
		args = append(args, *upd.DueDate)
	}

	// updated_at обновляется всегда, даже если больше нечего менять
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, time.Now().Unix())

	query := "UPDATE todos SET " + strings.Join(setClauses, ", ") + " WHERE id = ? AND user_id = ?"
	args = append(args, todoID, userID)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return nil, storage.ErrTodoNotFound
	}

	return s.GetTodo(ctx, userID, todoID)
}

// DeleteTodo removes a todo owned by the user
func (s *Storage) DeleteTodo(ctx context.Context, userID, todoID string) error {
	query := `DELETE FROM todos WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTodoNotFound
	}

	return nil
}

// ToggleTodoCompleted flips the completed flag and refreshes updated_at
func (s *Storage) ToggleTodoCompleted(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	query := `UPDATE todos SET completed = 1 - completed, updated_at = ? WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, time.Now().Unix(), todoID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle todo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return nil, storage.ErrTodoNotFound
	}

	return s.GetTodo(ctx, userID, todoID)
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTodo читает одну строку todos
func scanTodo(row rowScanner) (*models.Todo, error) {
	todo := &models.Todo{}
	var completed int
	var createdAt, updatedAt int64

	err := row.Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&completed,
		&todo.Priority,
		&todo.DueDate,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan todo: %w", err)
	}

	todo.Completed = completed != 0
	todo.CreatedAt = time.Unix(createdAt, 0)
	todo.UpdatedAt = time.Unix(updatedAt, 0)

	return todo, nil
}

// boolToInt конвертирует bool в 0/1 для SQLite
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
