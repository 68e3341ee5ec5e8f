package html

import (
	"bytes"
	"testing"

	"github.com/bnema/todos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	renderer, err := NewRenderer()
	require.NoError(t, err)
	return renderer
}

func TestRenderListsShowsCompletionAndRemaining(t *testing.T) {
	t.Parallel()

	renderer := newTestRenderer(t)
	var buf bytes.Buffer
	err := renderer.Render(&buf, "lists", Page{
		Flash: domain.Flash{Success: "The list has been created."},
		Lists: []domain.List{
			{ID: 1, Name: "Groceries", Todos: []domain.Todo{{ID: 1, Name: "milk"}, {ID: 2, Name: "eggs", Completed: true}}},
			{ID: 2, Name: "Done", Todos: []domain.Todo{{ID: 1, Name: "x", Completed: true}}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<title>Todo Lists · Todos</title>")
	assert.Contains(t, out, "The list has been created.")
	assert.Contains(t, out, `href="/lists/1"`)
	assert.Contains(t, out, "1 / 2")
	assert.Contains(t, out, `<li class="complete">`)
	assert.Contains(t, out, `href="/lists/new"`)
}

func TestRenderListsEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, newTestRenderer(t).Render(&buf, "lists", Page{}))
	assert.Contains(t, buf.String(), "You have no lists yet.")
	assert.NotContains(t, buf.String(), "flash")
}

func TestRenderListShowsToggleTargets(t *testing.T) {
	t.Parallel()

	list := domain.List{ID: 3, Name: "Chores", Todos: []domain.Todo{{ID: 1, Name: "sweep"}, {ID: 2, Name: "mop", Completed: true}}}
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "list", Page{List: list, Todos: domain.SortTodosForDisplay(list.Todos)})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `action="/lists/3/todos/1"`)
	assert.Contains(t, out, `action="/lists/3/todos/2/destroy"`)
	assert.Contains(t, out, `action="/lists/3/check_all"`)
	assert.Contains(t, out, `name="completed" value="true"`)
	assert.Contains(t, out, `name="completed" value="false"`)
	assert.Contains(t, out, "1 / 2")
}

func TestRenderEscapesUserInput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "new_list", Page{
		Name:  `<script>alert(1)</script>`,
		Flash: domain.Flash{Error: "List name must be unique."},
	})
	require.NoError(t, err)

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "List name must be unique.")
}

func TestRenderEditListPrefillsName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "edit_list", Page{List: domain.List{ID: 2, Name: "Work"}, Name: "Work"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `action="/lists/2"`)
	assert.Contains(t, buf.String(), `value="Work"`)
	assert.Contains(t, buf.String(), `action="/lists/2/destroy"`)
}

func TestRenderUnknownView(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "missing", Page{})
	assert.ErrorContains(t, err, `unknown view "missing"`)
	assert.Zero(t, buf.Len())
}

func TestStylesheetIsEmbedded(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(Stylesheet()), "#lists")
}
