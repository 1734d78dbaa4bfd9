package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/taskkeeper/internal/models"
	"github.com/iudanet/taskkeeper/internal/server/storage"
	"github.com/iudanet/taskkeeper/internal/server/token"
	"github.com/iudanet/taskkeeper/internal/validation"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// Generic user-facing messages.
// Одно сообщение для "нет такого email" и "неверный пароль",
// чтобы не раскрывать, какая часть пары неверна.
const (
	msgInvalidCredentials = "incorrect email or password"
	msgCouldNotValidate   = "could not validate credentials"
	msgForgotPasswordAck  = "If this email exists in our system, you will receive a reset link shortly."
	msgPasswordTooLong    = "Password must not exceed 72 bytes in length"
)

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens *token.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		tokens: tokens,
	}
}

// Signup обрабатывает POST /api/v1/auth/signup
// Регистрация нового пользователя, в ответе сразу выдается session token
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode signup request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email on signup", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			sendError(h.logger, w, msgPasswordTooLong, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "signup with registered email")
			sendError(h.logger, w, "This email is already registered. Please try logging in.", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	accessToken, expiresIn, err := h.tokens.IssueSession(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        toUserResponse(user),
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
// Аутентификация по email и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found")
			sendError(h.logger, w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.logger.WarnContext(ctx, "login failed: password mismatch", slog.String("user_id", user.ID))
		sendError(h.logger, w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := h.tokens.IssueSession(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("user_id", user.ID))

	resp := api.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
		User:        toUserResponse(user),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /api/v1/auth/refresh-token
// Выдает новый токен с тем же subject и свежим сроком действия.
// Токены self-contained, на сервере ничего не хранится и не отзывается.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, err := bearerToken(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.VerifySession(tokenString)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh failed", slog.Any("error", err))
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	accessToken, expiresIn, err := h.tokens.IssueSession(claims.Subject)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "token refreshed", slog.String("user_id", claims.Subject))

	resp := api.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Validate обрабатывает GET /api/v1/auth/validate-token
// Проверяет токен и возвращает subject и срок действия
func (h *AuthHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString, err := bearerToken(r)
	if err != nil {
		sendError(h.logger, w, err.Error(), http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.VerifySession(tokenString)
	if err != nil {
		h.logger.WarnContext(ctx, "token validation failed", slog.Any("error", err))
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	resp := api.ValidateResponse{
		Valid:     true,
		UserID:    claims.Subject,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// ForgotPassword обрабатывает POST /api/v1/auth/forgot-password
// Ответ всегда одинаковый, существует email или нет (anti-enumeration).
// Reset-ссылка доставляется out of band: здесь она только логируется.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode forgot-password request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	ack := api.MessageResponse{Message: msgForgotPasswordAck}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			// Ошибку хранилища тоже не раскрываем, только логируем
			h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		}
		sendJSON(h.logger, w, ack, http.StatusOK)
		return
	}

	resetToken, _, err := h.tokens.IssueReset(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue reset token", slog.Any("error", err))
		sendJSON(h.logger, w, ack, http.StatusOK)
		return
	}

	// TODO: отправлять письмо вместо записи в лог
	h.logger.InfoContext(ctx, "password reset link generated",
		slog.String("user_id", user.ID),
		slog.String("reset_link", "/reset-password?token="+resetToken))

	sendJSON(h.logger, w, ack, http.StatusOK)
}

// ResetPassword обрабатывает POST /api/v1/auth/reset-password
// Принимает только токены с purpose "password_reset"
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode reset-password request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	claims, err := h.tokens.VerifyReset(req.Token)
	if err != nil {
		h.logger.WarnContext(ctx, "reset-password with bad token", slog.Any("error", err))
		sendError(h.logger, w, "invalid or expired reset token", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			sendError(h.logger, w, msgPasswordTooLong, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password reset successfully", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password reset successfully"}, http.StatusOK)
}

// ChangePassword обрабатывает PUT /api/v1/auth/change-password
// Требует session token (через AuthMiddleware) и текущий пароль.
// Выданные ранее токены остаются валидны до истечения срока:
// механизма отзыва нет, это принятое ограничение.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	var req api.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode change-password request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.logger.WarnContext(ctx, "change-password with wrong old password", slog.String("user_id", userID))
		sendError(h.logger, w, "Incorrect password. Please try again.", http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.NewPassword); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := hashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			sendError(h.logger, w, msgPasswordTooLong, http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		h.logger.ErrorContext(ctx, "failed to update password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "password changed successfully", slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password changed successfully"}, http.StatusOK)
}

// Logout обрабатывает POST /api/v1/auth/logout
// Токены self-contained, на сервере ничего не инвалидируется:
// клиент просто выбрасывает свой токен
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, api.MessageResponse{Message: "Successfully logged out"}, http.StatusOK)
}

// Me обрабатывает GET /api/v1/auth/me
// Возвращает профиль текущего пользователя без хеша пароля
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, msgCouldNotValidate, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toUserResponse(user), http.StatusOK)
}

// bearerToken извлекает токен из заголовка Authorization
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid Authorization header format")
	}

	return parts[1], nil
}

// hashPassword хеширует пароль через bcrypt.
// bcrypt ограничивает вход 72 байтами, более длинный пароль
// возвращает bcrypt.ErrPasswordTooLong.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// toUserResponse конвертирует модель в публичный профиль
func toUserResponse(user *models.User) api.UserResponse {
	return api.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
