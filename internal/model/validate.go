package model

import (
	"regexp"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Fields returns the errors as a field-to-message map for JSON responses.
// When a field failed more than once, the first message wins.
func (e *ValidationError) Fields() map[string]string {
	m := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		if _, ok := m[fe.Field]; !ok {
			m[fe.Field] = fe.Message
		}
	}
	return m
}

// slugPattern matches URL-safe slugs: letters, digits, hyphens, underscores.
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateNews checks a News item for constraint violations.
func ValidateNews(n *News) error {
	var ve ValidationError

	if strings.TrimSpace(n.Title) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	}
	if strings.TrimSpace(n.Text) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "text", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateComment checks a Comment for constraint violations. Moderation of
// the text happens separately; this only enforces structural rules.
func ValidateComment(c *Comment) error {
	var ve ValidationError

	if strings.TrimSpace(c.Text) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "text", Message: "is required"})
	}
	if c.NewsID == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "news_id", Message: "is required"})
	}
	if c.AuthorID == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "author_id", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateNote checks a Note for constraint violations. The slug must
// already be filled in (derived from the title when the submission left it
// empty); uniqueness is enforced by the store.
func ValidateNote(n *Note) error {
	var ve ValidationError

	title := strings.TrimSpace(n.Title)
	if title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	} else if len([]rune(title)) > 100 {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "must be 100 characters or fewer"})
	}

	if strings.TrimSpace(n.Text) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "text", Message: "is required"})
	}

	switch {
	case n.Slug == "":
		ve.Errors = append(ve.Errors, FieldError{Field: "slug", Message: "is required"})
	case len(n.Slug) > 100:
		ve.Errors = append(ve.Errors, FieldError{Field: "slug", Message: "must be 100 characters or fewer"})
	case !slugPattern.MatchString(n.Slug):
		ve.Errors = append(ve.Errors, FieldError{Field: "slug", Message: "may only contain letters, digits, hyphens and underscores"})
	}

	if n.AuthorID == 0 {
		ve.Errors = append(ve.Errors, FieldError{Field: "author_id", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
