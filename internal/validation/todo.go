package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/taskkeeper/internal/models"
)

const (
	// MaxTitleLen максимальная длина заголовка задачи
	MaxTitleLen = 255
	// MaxDescriptionLen максимальная длина описания задачи
	MaxDescriptionLen = 1000
)

// ValidateTitle проверяет заголовок задачи: непустой после trim, до 255 символов
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must be %d characters or less", MaxTitleLen)
	}

	return nil
}

// ValidateDescription проверяет описание задачи: до 1000 символов
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("description must be %d characters or less", MaxDescriptionLen)
	}

	return nil
}

// ValidatePriority проверяет, что приоритет один из low / medium / high
func ValidatePriority(priority string) error {
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return nil
	}
	return fmt.Errorf("priority must be one of: %s, %s, %s",
		models.PriorityLow, models.PriorityMedium, models.PriorityHigh)
}

// ValidateDueDate проверяет формат даты YYYY-MM-DD.
// Пустая строка допустима (дата не задана).
func ValidateDueDate(dueDate string) error {
	if dueDate == "" {
		return nil
	}

	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		return fmt.Errorf("due_date must be a date in YYYY-MM-DD format")
	}

	return nil
}
