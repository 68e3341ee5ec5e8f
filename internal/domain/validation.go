package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength = 1
	MaxNameLength = 100

	listNameSubject = "List name"
	todoNameSubject = "Todo name"
)

// NormalizeName trims surrounding whitespace from user input.
func NormalizeName(raw string) string {
	return strings.TrimSpace(raw)
}

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength
}

// ValidateListName checks length and uniqueness of an already normalized name.
// The list identified by self is skipped in the uniqueness check; pass 0 when
// creating a new list.
func (s *SessionState) ValidateListName(name string, self ListID) error {
	if !validLength(name) {
		return &ValidationError{Subject: listNameSubject, Err: ErrInvalidLength}
	}

	for _, list := range s.Lists {
		if list.ID == self {
			continue
		}
		if list.Name == name {
			return &ValidationError{Subject: listNameSubject, Err: ErrDuplicateName}
		}
	}

	return nil
}

func ValidateTodoName(name string) error {
	if !validLength(name) {
		return &ValidationError{Subject: todoNameSubject, Err: ErrInvalidLength}
	}

	return nil
}
