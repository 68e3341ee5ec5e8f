package domain

import (
	"slices"
	"time"
)

// SessionState holds every list owned by one browser session.
type SessionState struct {
	Lists []List
	// LastListID is the highest list id ever handed out in this session.
	LastListID ListID
}

// Flash carries one-shot notices for the next rendered page.
type Flash struct {
	Success string
	Error   string
}

func (f Flash) IsZero() bool {
	return f.Success == "" && f.Error == ""
}

type Session struct {
	ID        string
	State     SessionState
	Flash     Flash
	UpdatedAt time.Time
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	s.State = s.State.Clone()
	return s
}

func (s SessionState) Clone() SessionState {
	if s.Lists == nil {
		return s
	}

	lists := make([]List, len(s.Lists))
	for i, list := range s.Lists {
		lists[i] = list.Clone()
	}
	s.Lists = lists

	return s
}

func (s SessionState) ListIndex(id ListID) int {
	return slices.IndexFunc(s.Lists, func(list List) bool { return list.ID == id })
}

func (s *SessionState) nextListID() ListID {
	next := s.LastListID
	for _, list := range s.Lists {
		if list.ID > next {
			next = list.ID
		}
	}
	next++
	s.LastListID = next

	return next
}

// AppendList adds an empty list with a freshly allocated id. The name must
// already be validated.
func (s *SessionState) AppendList(name string) List {
	list := List{ID: s.nextListID(), Name: name, Todos: []Todo{}}
	s.Lists = append(s.Lists, list)

	return list
}
