// Package util provides shared utility functions.
package util

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// TaskIDPrefix is prepended to every generated task ID.
const TaskIDPrefix = "task-"

const (
	// DefaultShortIDLength is the default number of characters for short IDs
	// ("task-" plus 8 hex chars).
	DefaultShortIDLength = 13
	// MaxAmbiguousCandidates is the max number of candidates to show in ambiguous error.
	MaxAmbiguousCandidates = 5
)

// Errors returned by ID resolution functions.
var (
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
	ErrNotFound    = errors.New("not found")
)

// NewTaskID returns a fresh task identifier.
func NewTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}

// ShortID returns a shortened version of an ID.
// If n is 0 or negative, DefaultShortIDLength is used.
//
// Examples:
//
//	ShortID("task-0f8fad5b-d9cb-469f-a165-70867728950e", 0) → "task-0f8fad5b"
//	ShortID("1700000000000", 0) → "1700000000000"
func ShortID(id string, n int) string {
	if n <= 0 {
		n = DefaultShortIDLength
	}
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// IDPrefixResolver finds task IDs by prefix.
// This is implemented by task.List.
type IDPrefixResolver interface {
	FindTaskIDsByPrefix(prefix string) []string
}

// ResolveTaskID resolves a task ID or prefix to a full task ID.
//
// Resolution rules:
//  1. If idOrPrefix matches exactly one ID prefix, return that ID.
//  2. Otherwise retry with the "task-" prefix prepended.
//  3. An exact full-ID match always wins over longer candidates.
//  4. If multiple matches, return ErrAmbiguousID with candidates.
//  5. If no matches, return ErrNotFound.
func ResolveTaskID(resolver IDPrefixResolver, idOrPrefix string) (string, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return "", fmt.Errorf("task ID: %w", ErrNotFound)
	}

	candidates := resolver.FindTaskIDsByPrefix(idOrPrefix)
	normalized := idOrPrefix
	if len(candidates) == 0 && !strings.HasPrefix(idOrPrefix, TaskIDPrefix) {
		normalized = TaskIDPrefix + idOrPrefix
		candidates = resolver.FindTaskIDsByPrefix(normalized)
	}
	if slices.Contains(candidates, normalized) {
		return normalized, nil
	}

	return resolveFromCandidates(normalized, candidates)
}

// resolveFromCandidates handles the common resolution logic.
func resolveFromCandidates(prefix string, candidates []string) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("task with prefix %q: %w", prefix, ErrNotFound)
	case 1:
		return candidates[0], nil
	default:
		shown := candidates
		if len(shown) > MaxAmbiguousCandidates {
			shown = shown[:MaxAmbiguousCandidates]
		}
		return "", fmt.Errorf("%w: prefix %q matches %d tasks: %v",
			ErrAmbiguousID, prefix, len(candidates), shown)
	}
}
