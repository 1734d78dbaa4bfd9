package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// mockTodoStorage is a mock implementation of TodoStorage for testing
type mockTodoStorage struct {
	todos       map[string]*models.Todo // id -> Todo
	createError error
	listError   error
}

func newMockTodoStorage() *mockTodoStorage {
	return &mockTodoStorage{
		todos: make(map[string]*models.Todo),
	}
}

func (m *mockTodoStorage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if m.createError != nil {
		return m.createError
	}
	m.todos[todo.ID] = todo
	return nil
}

func (m *mockTodoStorage) ListTodosByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := make([]*models.Todo, 0)
	for _, todo := range m.todos {
		if todo.UserID == userID {
			result = append(result, todo)
		}
	}
	return result, nil
}

// owned возвращает задачу, только если она принадлежит userID
func (m *mockTodoStorage) owned(userID, todoID string) (*models.Todo, error) {
	todo, ok := m.todos[todoID]
	if !ok || todo.UserID != userID {
		return nil, storage.ErrTodoNotFound
	}
	return todo, nil
}

func (m *mockTodoStorage) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	return m.owned(userID, todoID)
}

func (m *mockTodoStorage) UpdateTodo(ctx context.Context, userID, todoID string, upd storage.TodoUpdate) (*models.Todo, error) {
	todo, err := m.owned(userID, todoID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		todo.Title = *upd.Title
	}
	if upd.Description != nil {
		todo.Description = *upd.Description
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
	}
	if upd.Priority != nil {
		todo.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		todo.DueDate = *upd.DueDate
	}
	todo.UpdatedAt = time.Now()
	return todo, nil
}

func (m *mockTodoStorage) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if _, err := m.owned(userID, todoID); err != nil {
		return err
	}
	delete(m.todos, todoID)
	return nil
}

func (m *mockTodoStorage) ToggleTodoCompleted(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	todo, err := m.owned(userID, todoID)
	if err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	todo.UpdatedAt = time.Now()
	return todo, nil
}

func addTestTodo(m *mockTodoStorage, userID, title string) *models.Todo {
	todo := &models.Todo{
		ID:        "todo-" + title,
		UserID:    userID,
		Title:     title,
		Priority:  models.PriorityMedium,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.todos[todo.ID] = todo
	return todo
}

func newTodoHandler(todos *mockTodoStorage) *TodoHandler {
	return NewTodoHandler(setupTestLogger(), todos)
}

// todoRequest собирает запрос от имени userID с опциональным id в пути
func todoRequest(t *testing.T, method, target, userID, todoID string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if userID != "" {
		req = withUserID(req, userID)
	}
	if todoID != "" {
		req.SetPathValue("id", todoID)
	}
	return req
}

func TestTodoHandler_Create_Success(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)

	req := todoRequest(t, http.MethodPost, "/api/v1/todos", "user-1", "", api.CreateTodoRequest{
		Title:       "Buy milk",
		Description: "2 liters",
		Priority:    models.PriorityHigh,
		DueDate:     "2026-09-15",
	})
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "Buy milk", resp.Title)
	assert.Equal(t, models.PriorityHigh, resp.Priority)
	assert.Equal(t, "2026-09-15", resp.DueDate)
	assert.False(t, resp.Completed)
}

func TestTodoHandler_Create_DefaultPriority(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)

	req := todoRequest(t, http.MethodPost, "/api/v1/todos", "user-1", "", api.CreateTodoRequest{
		Title: "Buy milk",
	})
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, models.PriorityMedium, resp.Priority)
}

func TestTodoHandler_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  api.CreateTodoRequest
	}{
		{"blank title", api.CreateTodoRequest{Title: "   "}},
		{"title too long", api.CreateTodoRequest{Title: strings.Repeat("a", 256)}},
		{"description too long", api.CreateTodoRequest{Title: "ok", Description: strings.Repeat("a", 1001)}},
		{"bad priority", api.CreateTodoRequest{Title: "ok", Priority: "urgent"}},
		{"bad due date", api.CreateTodoRequest{Title: "ok", DueDate: "15-09-2026"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := newMockTodoStorage()
			handler := newTodoHandler(todos)

			req := todoRequest(t, http.MethodPost, "/api/v1/todos", "user-1", "", tt.req)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Empty(t, todos.todos)
		})
	}
}

func TestTodoHandler_Create_NoIdentity(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)

	req := todoRequest(t, http.MethodPost, "/api/v1/todos", "", "", api.CreateTodoRequest{Title: "Buy milk"})
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTodoHandler_List_OnlyOwnTodos(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	addTestTodo(todos, "user-1", "mine")
	addTestTodo(todos, "user-2", "theirs")

	req := todoRequest(t, http.MethodGet, "/api/v1/todos", "user-1", "", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "mine", resp[0].Title)
}

func TestTodoHandler_List_Empty(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)

	req := todoRequest(t, http.MethodGet, "/api/v1/todos", "user-1", "", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// Пустой список, а не null
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestTodoHandler_Get(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	todo := addTestTodo(todos, "user-1", "mine")

	req := todoRequest(t, http.MethodGet, "/api/v1/todos/"+todo.ID, "user-1", todo.ID, nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, todo.ID, resp.ID)
}

func TestTodoHandler_NotFoundMasking(t *testing.T) {
	// Чужая и несуществующая задача дают неотличимые ответы
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	foreign := addTestTodo(todos, "user-2", "theirs")

	ops := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
	}{
		{"get", handler.Get},
		{"delete", handler.Delete},
		{"toggle", handler.ToggleComplete},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			reqForeign := todoRequest(t, http.MethodGet, "/api/v1/todos/"+foreign.ID, "user-1", foreign.ID, nil)
			wForeign := httptest.NewRecorder()
			op.call(wForeign, reqForeign)

			reqMissing := todoRequest(t, http.MethodGet, "/api/v1/todos/no-such-id", "user-1", "no-such-id", nil)
			wMissing := httptest.NewRecorder()
			op.call(wMissing, reqMissing)

			assert.Equal(t, http.StatusNotFound, wForeign.Code)
			assert.Equal(t, http.StatusNotFound, wMissing.Code)
			assert.JSONEq(t, wForeign.Body.String(), wMissing.Body.String())
		})
	}
}

func TestTodoHandler_Update_PartialFields(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	todo := addTestTodo(todos, "user-1", "original")
	todo.Description = "keep me"

	newTitle := "renamed"
	req := todoRequest(t, http.MethodPut, "/api/v1/todos/"+todo.ID, "user-1", todo.ID,
		api.UpdateTodoRequest{Title: &newTitle})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "renamed", resp.Title)
	assert.Equal(t, "keep me", resp.Description)
}

func TestTodoHandler_Update_ValidatesChangedFields(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	todo := addTestTodo(todos, "user-1", "original")

	badPriority := "urgent"
	req := todoRequest(t, http.MethodPut, "/api/v1/todos/"+todo.ID, "user-1", todo.ID,
		api.UpdateTodoRequest{Priority: &badPriority})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, models.PriorityMedium, todos.todos[todo.ID].Priority)
}

func TestTodoHandler_Update_NotFound(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)

	newTitle := "renamed"
	req := todoRequest(t, http.MethodPut, "/api/v1/todos/no-such-id", "user-1", "no-such-id",
		api.UpdateTodoRequest{Title: &newTitle})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoHandler_Delete(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	todo := addTestTodo(todos, "user-1", "doomed")

	req := todoRequest(t, http.MethodDelete, "/api/v1/todos/"+todo.ID, "user-1", todo.ID, nil)
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, todos.todos)

	// Повторное удаление уже 404
	req = todoRequest(t, http.MethodDelete, "/api/v1/todos/"+todo.ID, "user-1", todo.ID, nil)
	w = httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoHandler_ToggleComplete(t *testing.T) {
	todos := newMockTodoStorage()
	handler := newTodoHandler(todos)
	todo := addTestTodo(todos, "user-1", "flip")

	req := todoRequest(t, http.MethodPatch, "/api/v1/todos/"+todo.ID+"/toggle-complete", "user-1", todo.ID, nil)
	w := httptest.NewRecorder()
	handler.ToggleComplete(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Completed)

	// Второй toggle возвращает задачу в исходное состояние
	req = todoRequest(t, http.MethodPatch, "/api/v1/todos/"+todo.ID+"/toggle-complete", "user-1", todo.ID, nil)
	w = httptest.NewRecorder()
	handler.ToggleComplete(w, req)

	var second api.TodoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&second))
	assert.False(t, second.Completed)
}
