package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTextLength is the maximum number of characters a task text may hold after trimming.
const MaxTextLength = 200

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// Priority represents the priority levels of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// AllPriorities returns the priorities in display order.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Task represents one user-entered to-do item.
type Task struct {
	ID        string    `json:"id" yaml:"id" toml:"id" validate:"required"`
	Text      string    `json:"text" yaml:"text" toml:"text" validate:"tasktext"`
	Completed bool      `json:"completed" yaml:"completed" toml:"completed"`
	Priority  Priority  `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=high medium low"`
	DueDate   string    `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required"`
}

// IsOverdue reports whether the task has a due date before today and is still active.
func (t Task) IsOverdue(today time.Time) bool {
	if t.Completed || t.DueDate == "" {
		return false
	}
	due, err := time.ParseInLocation(DateLayout, t.DueDate, today.Location())
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, today.Location()))
}

// ValidationError is returned when user input cannot become a valid task.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches validation errors by field and reason so wrapped sentinels compare equal.
func (e *ValidationError) Is(target error) bool {
	var other *ValidationError
	if !errors.As(target, &other) {
		return false
	}
	return e.Field == other.Field && e.Reason == other.Reason
}

var (
	ErrEmptyText       = &ValidationError{Field: "text", Reason: "empty"}
	ErrTooLong         = &ValidationError{Field: "text", Reason: fmt.Sprintf("longer than %d characters", MaxTextLength)}
	ErrInvalidPriority = &ValidationError{Field: "priority", Reason: "must be one of high, medium, low"}
	ErrInvalidDueDate  = &ValidationError{Field: "dueDate", Reason: "must be a date in YYYY-MM-DD form"}
)

// ValidateText trims text and checks it against the length rules.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return "", ErrTooLong
	}
	return trimmed, nil
}

// ParsePriority maps user input to a Priority. Empty input yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case "", PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", ErrInvalidPriority
	}
}

// ValidateDueDate accepts an empty string or a YYYY-MM-DD date.
func ValidateDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDueDate
	}
	return s, nil
}

// NewTask creates an active task stamped with the given time.
func NewTask(id, text string, priority Priority, dueDate string, now time.Time) Task {
	if priority == "" {
		priority = PriorityMedium
	}
	return Task{
		ID:        id,
		Text:      text,
		Completed: false,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tasktext", validateTaskText)
}

// validateTaskText applies the trimmed-length rule of ValidateText to a struct field.
func validateTaskText(fl validator.FieldLevel) bool {
	text := fl.Field().String()
	_, err := ValidateText(text)
	return err == nil && text == strings.TrimSpace(text)
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
	}
	return fmt.Errorf("%s", strings.Join(messages, "; "))
}
