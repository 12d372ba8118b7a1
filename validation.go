package autoblogger

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrPromptTooLong   = errors.New("prompt exceeds maximum length")
	ErrContentTooLong  = errors.New("content exceeds maximum length")
	ErrContentTooShort = errors.New("content below minimum length")
)

// Content limits
const (
	// MaxPromptLength bounds user-supplied custom prompts.
	MaxPromptLength = 10_000

	// MaxContentLength is the maximum accepted article body size.
	MaxContentLength = 50_000

	// MinContentLength is the minimum body size for a generation to count
	// as successful output.
	MinContentLength = 100
)

// ValidatePrompt validates a generation prompt.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	if len(prompt) > MaxPromptLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrPromptTooLong, len(prompt), MaxPromptLength)
	}
	return nil
}

// ValidateArticleContent validates a generated article body.
func ValidateArticleContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if len(trimmed) < MinContentLength {
		return fmt.Errorf("%w: %d characters (min %d)", ErrContentTooShort, len(trimmed), MinContentLength)
	}
	if len(content) > MaxContentLength {
		return fmt.Errorf("%w: %d characters (max %d)", ErrContentTooLong, len(content), MaxContentLength)
	}
	return nil
}
