package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid password", "Valid123!", ""},
		{"too short", "short1!", "at least 8 characters"},
		{"missing uppercase", "alllowercase1!", "uppercase letter"},
		{"missing lowercase", "ALLUPPER123!", "lowercase letter"},
		{"missing digit", "NoDigitsHere!", "digit"},
		{"missing symbol", "NoSymbol123", "special character"},
		{"empty", "", "at least 8 characters"},
		{"all symbol variants accepted", `Aa1!@#$%^&*(),.?":{}|<>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidatePassword_FirstViolationWins(t *testing.T) {
	// Короткий пароль без заглавных: должна вернуться ошибка длины
	err := ValidatePassword("ab1!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}

func TestValidatePassword_NoMaxLength(t *testing.T) {
	// Лимит в 72 байта накладывает bcrypt, не политика
	long := "Valid123!" + strings.Repeat("a", 200)
	assert.NoError(t, ValidatePassword(long))
}
