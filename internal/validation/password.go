package validation

import (
	"fmt"
	"strings"
	"unicode"
)

// MinPasswordLen минимальная длина пароля
const MinPasswordLen = 8

// PasswordSymbols набор спецсимволов, хотя бы один из которых обязателен
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

// ValidatePassword проверяет пароль на соответствие требованиям безопасности.
// Проверки выполняются по порядку, возвращается первая нарушенная:
// длина >= 8, заглавная буква, строчная буква, цифра, спецсимвол.
// Максимальная длина здесь не ограничивается: лимит в 72 байта
// накладывает bcrypt и транслируется в ошибку на уровне handlers.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, c):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	if !hasSymbol {
		return fmt.Errorf("password must contain at least one special character")
	}

	return nil
}
