package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTodoNotFound indicates that the todo does not exist or is owned by
	// another user. Оба случая неразличимы намеренно, чтобы не раскрывать
	// существование чужих записей.
	ErrTodoNotFound = errors.New("todo not found")
)
