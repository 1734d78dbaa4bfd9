package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет допустимый формат email
// Упрощенная проверка: непустая локальная часть, @, домен с точкой
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MaxEmailLen максимальная длина email
const MaxEmailLen = 255

// ValidateEmail проверяет, что email соответствует требованиям
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}

	return nil
}
