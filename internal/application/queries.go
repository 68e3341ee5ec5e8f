package application

import "github.com/bnema/todos/internal/domain"

// ListDetail is a list together with its todos in display order.
type ListDetail struct {
	List  domain.List
	Todos []domain.Todo
}

// Lists returns the session's lists in display order.
func (s *Service) Lists(state domain.SessionState) []domain.List {
	return domain.SortListsForDisplay(state.Clone().Lists)
}

func (s *Service) List(state domain.SessionState, id domain.ListID) (ListDetail, error) {
	idx := state.ListIndex(id)
	if idx < 0 {
		return ListDetail{}, listNotFound(id)
	}

	list := state.Lists[idx].Clone()
	return ListDetail{
		List:  list,
		Todos: domain.SortTodosForDisplay(list.Todos),
	}, nil
}
