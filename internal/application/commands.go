package application

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/todos/internal/domain"
)

// ParseListID converts a route parameter into a list id. Anything that is not a
// positive integer cannot name a list and is reported as not found.
func ParseListID(raw string) (domain.ListID, error) {
	id, err := parsePositiveInt(raw)
	if err != nil {
		return 0, fmt.Errorf("list id %q: %w", raw, domain.ErrListNotFound)
	}

	return domain.ListID(id), nil
}

func ParseTodoID(raw string) (domain.TodoID, error) {
	id, err := parsePositiveInt(raw)
	if err != nil {
		return 0, fmt.Errorf("todo id %q: %w", raw, domain.ErrTodoNotFound)
	}

	return domain.TodoID(id), nil
}

// ParseCompleted reads the "completed" form value; only "true" means done.
func ParseCompleted(raw string) bool {
	return strings.TrimSpace(raw) == "true"
}

func parsePositiveInt(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive id %d", id)
	}

	return id, nil
}
