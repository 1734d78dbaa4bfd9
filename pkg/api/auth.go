package api

import "time"

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	Email    string `json:"email"`          // email пользователя
	Name     string `json:"name,omitempty"` // отображаемое имя (опционально)
	Password string `json:"password"`       // пароль в открытом виде
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`    // email пользователя
	Password string `json:"password"` // пароль в открытом виде
}

// UserResponse представляет публичный профиль пользователя (без хеша пароля)
type UserResponse struct {
	ID        string    `json:"id"`             // UUID пользователя
	Email     string    `json:"email"`          // email
	Name      string    `json:"name,omitempty"` // отображаемое имя
	CreatedAt time.Time `json:"created_at"`     // время создания
	UpdatedAt time.Time `json:"updated_at"`     // время последнего обновления
}

// AuthResponse представляет ответ на успешный signup/login
type AuthResponse struct {
	AccessToken string       `json:"access_token"` // JWT access token
	TokenType   string       `json:"token_type"`   // всегда "bearer"
	ExpiresIn   int64        `json:"expires_in"`   // время жизни токена в секундах
	User        UserResponse `json:"user"`         // профиль пользователя
}

// TokenResponse представляет ответ с новым токеном (refresh)
type TokenResponse struct {
	AccessToken string `json:"access_token"` // JWT access token
	TokenType   string `json:"token_type"`   // всегда "bearer"
	ExpiresIn   int64  `json:"expires_in"`   // время жизни токена в секундах
}

// ValidateResponse представляет результат проверки токена
type ValidateResponse struct {
	Valid     bool   `json:"valid"`      // true если токен валиден
	UserID    string `json:"user_id"`    // subject токена
	ExpiresAt int64  `json:"expires_at"` // unix-время истечения
}

// ForgotPasswordRequest представляет запрос на восстановление пароля
type ForgotPasswordRequest struct {
	Email string `json:"email"` // email пользователя
}

// ResetPasswordRequest представляет запрос на сброс пароля по reset-токену
type ResetPasswordRequest struct {
	Token       string `json:"token"`        // reset token из письма
	NewPassword string `json:"new_password"` // новый пароль
}

// ChangePasswordRequest представляет запрос на смену пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"` // текущий пароль
	NewPassword string `json:"new_password"` // новый пароль
}

// MessageResponse представляет ответ с информационным сообщением
type MessageResponse struct {
	Message string `json:"message"` // человекочитаемое сообщение
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
