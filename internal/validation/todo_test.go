package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"valid title", "Buy milk", false},
		{"max length", strings.Repeat("a", 255), false},
		{"empty", "", true},
		{"blank after trim", "   \t ", true},
		{"too long", strings.Repeat("a", 256), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription(strings.Repeat("a", 1000)))
	assert.Error(t, ValidateDescription(strings.Repeat("a", 1001)))
}

func TestValidatePriority(t *testing.T) {
	assert.NoError(t, ValidatePriority("low"))
	assert.NoError(t, ValidatePriority("medium"))
	assert.NoError(t, ValidatePriority("high"))

	// Enum проверяется строго, произвольные значения отклоняются
	assert.Error(t, ValidatePriority(""))
	assert.Error(t, ValidatePriority("urgent"))
	assert.Error(t, ValidatePriority("MEDIUM"))
}

func TestValidateDueDate(t *testing.T) {
	assert.NoError(t, ValidateDueDate(""))
	assert.NoError(t, ValidateDueDate("2026-01-31"))
	assert.Error(t, ValidateDueDate("31-01-2026"))
	assert.Error(t, ValidateDueDate("2026-13-01"))
	assert.Error(t, ValidateDueDate("tomorrow"))
}
