package validation

import (
	"fmt"
	"strings"
)

// ValidateRecipeTitle checks recipe title length bounds.
func ValidateRecipeTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return fmt.Errorf("title is required")
	}
	if len(trimmed) > 255 {
		return fmt.Errorf("title must not exceed 255 characters")
	}
	return nil
}

// ValidateDifficulty bounds the optional free-form difficulty label.
// Labels like easy/medium/hard are conventional, not an enum.
func ValidateDifficulty(difficulty string) error {
	if len(difficulty) > 50 {
		return fmt.Errorf("difficulty must not exceed 50 characters")
	}
	return nil
}

// ValidateCategoryName checks category name bounds.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name is required")
	}
	if len(trimmed) > 100 {
		return fmt.Errorf("name must not exceed 100 characters")
	}
	return nil
}

// ValidateCommentContent checks comment content bounds.
func ValidateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("content is required")
	}
	if len(trimmed) > 2000 {
		return fmt.Errorf("content must not exceed 2000 characters")
	}
	return nil
}
