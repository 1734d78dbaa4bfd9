package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/validation"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// Одинаковое сообщение для несуществующей и чужой задачи
const msgTodoNotFound = "Todo not found"

// TodoHandler обрабатывает запросы к задачам пользователя.
// Идентичность берется только из контекста (AuthMiddleware),
// user id из тела запроса никогда не используется.
type TodoHandler struct {
	logger *slog.Logger
	todos  storage.TodoStorage
}

// NewTodoHandler создает новый handler для задач
func NewTodoHandler(logger *slog.Logger, todos storage.TodoStorage) *TodoHandler {
	return &TodoHandler{
		logger: logger,
		todos:  todos,
	}
}

// List обрабатывает GET /api/v1/todos
// Возвращает все задачи пользователя, сначала новые
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	todos, err := h.todos.ListTodosByUser(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list todos", slog.Any("error", err), slog.String("user_id", userID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		resp = append(resp, toTodoResponse(todo))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/v1/todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	var req api.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create todo request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateTitle(req.Title); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := validation.ValidateDescription(req.Description); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if err := validation.ValidatePriority(priority); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if err := validation.ValidateDueDate(req.DueDate); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	now := time.Now()
	todo := &models.Todo{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.todos.CreateTodo(ctx, todo); err != nil {
		h.logger.ErrorContext(ctx, "failed to create todo", slog.Any("error", err), slog.String("user_id", userID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "todo created",
		slog.String("todo_id", todo.ID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, toTodoResponse(todo), http.StatusCreated)
}

// Get обрабатывает GET /api/v1/todos/{id}
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	todoID := r.PathValue("id")

	todo, err := h.todos.GetTodo(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			sendError(h.logger, w, msgTodoNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get todo", slog.Any("error", err), slog.String("todo_id", todoID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toTodoResponse(todo), http.StatusOK)
}

// Update обрабатывает PUT /api/v1/todos/{id}
// Меняются только переданные поля, updated_at обновляется всегда
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	todoID := r.PathValue("id")

	var req api.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update todo request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	if req.Description != nil {
		if err := validation.ValidateDescription(*req.Description); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	if req.Priority != nil {
		if err := validation.ValidatePriority(*req.Priority); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	if req.DueDate != nil {
		if err := validation.ValidateDueDate(*req.DueDate); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	upd := storage.TodoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	todo, err := h.todos.UpdateTodo(ctx, userID, todoID, upd)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			sendError(h.logger, w, msgTodoNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update todo", slog.Any("error", err), slog.String("todo_id", todoID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "todo updated",
		slog.String("todo_id", todoID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, toTodoResponse(todo), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/todos/{id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	todoID := r.PathValue("id")

	if err := h.todos.DeleteTodo(ctx, userID, todoID); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			sendError(h.logger, w, msgTodoNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete todo", slog.Any("error", err), slog.String("todo_id", todoID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "todo deleted",
		slog.String("todo_id", todoID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Todo deleted successfully"}, http.StatusOK)
}

// ToggleComplete обрабатывает PATCH /api/v1/todos/{id}/toggle-complete
func (h *TodoHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	todoID := r.PathValue("id")

	todo, err := h.todos.ToggleTodoCompleted(ctx, userID, todoID)
	if err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			sendError(h.logger, w, msgTodoNotFound, http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to toggle todo", slog.Any("error", err), slog.String("todo_id", todoID))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toTodoResponse(todo), http.StatusOK)
}

// toTodoResponse конвертирует модель в API ответ
func toTodoResponse(todo *models.Todo) api.TodoResponse {
	return api.TodoResponse{
		ID:          todo.ID,
		UserID:      todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		DueDate:     todo.DueDate,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}
