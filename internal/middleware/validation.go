package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits. Identifiers are UUIDs (36 chars) but the limits leave
// headroom for externally minted ids already present in the catalog file.
const (
	MaxIDLen          = 64
	MaxAuthorLen      = 128
	MaxCommentTextLen = 2000
)

// idRe matches URL-safe identifiers: alphanumeric, dash, underscore.
var idRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that a path identifier is well-formed.
func ValidateID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "id is required"
	}
	if len(id) > MaxIDLen {
		return "", "id must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", "id contains invalid characters"
	}
	return id, ""
}

// ValidateAuthor checks the comment author field.
func ValidateAuthor(author string) (string, string) {
	author = strings.TrimSpace(author)
	if author == "" {
		return "", "author is required"
	}
	if len(author) > MaxAuthorLen {
		return "", "author must be at most 128 characters"
	}
	return author, ""
}

// ValidateCommentText checks the comment text field.
func ValidateCommentText(text string) (string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "text is required"
	}
	if len(text) > MaxCommentTextLen {
		return "", "text must be at most 2000 characters"
	}
	return text, ""
}
