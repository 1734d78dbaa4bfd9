package models

import "time"

// User представляет учетную запись пользователя
type User struct {
	ID           string    `json:"id"`         // UUID пользователя
	Email        string    `json:"email"`      // уникальный email
	Name         string    `json:"name"`       // отображаемое имя (опционально)
	PasswordHash string    `json:"-"`          // bcrypt хеш пароля, никогда не отдается наружу
	CreatedAt    time.Time `json:"created_at"` // время создания
	UpdatedAt    time.Time `json:"updated_at"` // время последнего обновления
}
