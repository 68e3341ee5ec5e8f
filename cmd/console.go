package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	renderconsole "github.com/bnema/todos/internal/adapters/render/console"
	"github.com/bnema/todos/internal/application"
	"github.com/bnema/todos/internal/domain"
	"github.com/spf13/cobra"
)

type consoleCommand struct {
	usage   string
	summary string
}

var consoleCommands = []consoleCommand{
	{usage: "lists", summary: "show all lists"},
	{usage: "show <id>", summary: "show one list"},
	{usage: "new <name>", summary: "create a list"},
	{usage: "rename <id> <name>", summary: "rename a list"},
	{usage: "delete <id>", summary: "delete a list"},
	{usage: "add <id> <todo>", summary: "add a todo to a list"},
	{usage: "toggle <id> <todo_id> <true|false>", summary: "mark a todo done or not done"},
	{usage: "remove <id> <todo_id>", summary: "delete a todo"},
	{usage: "check <id>", summary: "complete every todo of a list"},
	{usage: "help", summary: "show this help"},
	{usage: "quit", summary: "leave the console"},
}

const maxConsoleLine = 16 << 10

var (
	errUsage       = errors.New("usage")
	errLineTooLong = fmt.Errorf("line is longer than %d bytes", maxConsoleLine)
)

type renderFunc func(renderconsole.View, renderconsole.RenderOptions) (string, error)

func newConsoleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Manage todo lists from a line-oriented console",
		Long:  "console reads one command per line from stdin and keeps its lists in a session that lasts as long as the process. Type help for the command list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr(), nil)
			if err != nil {
				return err
			}

			c := &console{
				lists:    app.lists,
				sessions: app.sessions,
				out:      cmd.OutOrStdout(),
				render:   renderconsole.Render,
			}
			return c.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type console struct {
	lists     *application.Service
	sessions  *application.SessionService
	out       io.Writer
	render    renderFunc
	sessionID string
}

func (c *console) run(ctx context.Context, in io.Reader) error {
	reader := bufio.NewReader(in)
	for {
		line, err := readLine(reader)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errLineTooLong):
			if err := c.report(err); err != nil {
				return err
			}
			continue
		case err != nil:
			return fmt.Errorf("read commands: %w", err)
		}

		quit, err := c.exec(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// readLine returns the next line without its terminator. Lines longer than
// maxConsoleLine are consumed whole and reported as errLineTooLong.
func readLine(r *bufio.Reader) (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if tooLong {
				return "", errLineTooLong
			}
			if len(line) > 0 {
				return string(line), nil
			}
			return "", err
		}

		if !tooLong {
			if len(line)+len(chunk) > maxConsoleLine {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", errLineTooLong
	}
	return string(line), nil
}

// exec runs one command line. Mistakes in the command are printed and only
// failures of the session store are returned.
func (c *console) exec(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	var err error
	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		err = c.help()
	case "lists":
		err = c.showLists(ctx)
	case "show":
		err = c.withList(fields, 2, func(id domain.ListID) error {
			return c.showList(ctx, id)
		})
	case "new":
		name := rest(line, 1)
		err = c.apply(ctx, application.NoticeListCreated, func(state *domain.SessionState) error {
			_, err := c.lists.CreateList(state, name)
			return err
		}, c.showLists)
	case "rename":
		err = c.withList(fields, 3, func(id domain.ListID) error {
			name := rest(line, 2)
			return c.apply(ctx, application.NoticeListUpdated, func(state *domain.SessionState) error {
				return c.lists.RenameList(state, id, name)
			}, c.listView(id))
		})
	case "delete":
		err = c.withList(fields, 2, func(id domain.ListID) error {
			return c.apply(ctx, application.NoticeListDeleted, func(state *domain.SessionState) error {
				return c.lists.DeleteList(state, id)
			}, c.showLists)
		})
	case "add":
		err = c.withList(fields, 3, func(id domain.ListID) error {
			name := rest(line, 2)
			return c.apply(ctx, application.NoticeTodoAdded, func(state *domain.SessionState) error {
				_, err := c.lists.AddTodo(state, id, name)
				return err
			}, c.listView(id))
		})
	case "toggle":
		err = c.withTodo(fields, 4, func(id domain.ListID, todoID domain.TodoID) error {
			completed := application.ParseCompleted(fields[3])
			return c.apply(ctx, application.NoticeTodoUpdated, func(state *domain.SessionState) error {
				return c.lists.ToggleTodo(state, id, todoID, completed)
			}, c.listView(id))
		})
	case "remove":
		err = c.withTodo(fields, 3, func(id domain.ListID, todoID domain.TodoID) error {
			return c.apply(ctx, application.NoticeTodoDeleted, func(state *domain.SessionState) error {
				return c.lists.DeleteTodo(state, id, todoID)
			}, c.listView(id))
		})
	case "check":
		err = c.withList(fields, 2, func(id domain.ListID) error {
			return c.apply(ctx, application.NoticeAllCompleted, func(state *domain.SessionState) error {
				return c.lists.CheckAllTodos(state, id)
			}, c.listView(id))
		})
	default:
		err = fmt.Errorf("%w: unknown command %q, type help for the command list", errUsage, fields[0])
	}

	return false, c.report(err)
}

// report prints user errors and passes everything else through.
func (c *console) report(err error) error {
	if err == nil {
		return nil
	}

	message, ok := userMessage(err)
	if !ok {
		return err
	}

	_, writeErr := fmt.Fprintf(c.out, "error: %s\n", message)
	return writeErr
}

func userMessage(err error) (string, bool) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error(), true
	case errors.Is(err, domain.ErrListNotFound):
		return application.NoticeListNotFound, true
	case errors.Is(err, domain.ErrTodoNotFound):
		return application.NoticeTodoNotFound, true
	case errors.Is(err, errUsage), errors.Is(err, errLineTooLong):
		return err.Error(), true
	default:
		return "", false
	}
}

func (c *console) withList(fields []string, want int, fn func(domain.ListID) error) error {
	if len(fields) < want {
		return usageError(fields[0])
	}

	id, err := application.ParseListID(fields[1])
	if err != nil {
		return err
	}

	return fn(id)
}

func (c *console) withTodo(fields []string, want int, fn func(domain.ListID, domain.TodoID) error) error {
	if len(fields) < want {
		return usageError(fields[0])
	}

	id, err := application.ParseListID(fields[1])
	if err != nil {
		return err
	}
	todoID, err := application.ParseTodoID(fields[2])
	if err != nil {
		return err
	}

	return fn(id, todoID)
}

func usageError(command string) error {
	for _, known := range consoleCommands {
		if strings.Fields(known.usage)[0] == command {
			return fmt.Errorf("%w: %s", errUsage, known.usage)
		}
	}

	return fmt.Errorf("%w: %s", errUsage, command)
}

func (c *console) help() error {
	var b strings.Builder
	b.WriteString("commands:\n")
	for _, known := range consoleCommands {
		fmt.Fprintf(&b, "  %-36s %s\n", known.usage, known.summary)
	}

	_, err := io.WriteString(c.out, b.String())
	return err
}

func (c *console) apply(ctx context.Context, notice string, fn application.Mutation, show func(context.Context) error) error {
	session, err := c.sessions.Apply(ctx, c.sessionID, notice, fn)
	if session.ID != "" {
		c.sessionID = session.ID
	}
	if err != nil {
		return err
	}

	return show(ctx)
}

func (c *console) listView(id domain.ListID) func(context.Context) error {
	return func(ctx context.Context) error {
		return c.showList(ctx, id)
	}
}

func (c *console) showLists(ctx context.Context) error {
	session, flash, err := c.take(ctx)
	if err != nil {
		return err
	}

	return c.print(renderconsole.View{
		Flash: flash,
		Lists: c.lists.Lists(session.State),
	})
}

func (c *console) showList(ctx context.Context, id domain.ListID) error {
	session, flash, err := c.take(ctx)
	if err != nil {
		return err
	}

	detail, err := c.lists.List(session.State, id)
	if err != nil {
		return err
	}

	return c.print(renderconsole.View{Flash: flash, Detail: &detail})
}

func (c *console) take(ctx context.Context) (domain.Session, domain.Flash, error) {
	session, flash, err := c.sessions.Take(ctx, c.sessionID)
	if err != nil {
		return domain.Session{}, domain.Flash{}, err
	}
	c.sessionID = session.ID

	return session, flash, nil
}

func (c *console) print(view renderconsole.View) error {
	output, err := c.render(view, renderconsole.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	_, err = fmt.Fprintln(c.out, output)
	return err
}

// rest returns line without its first n words, inner spacing preserved.
func rest(line string, n int) string {
	s := strings.TrimSpace(line)
	for range n {
		idx := strings.IndexFunc(s, unicode.IsSpace)
		if idx < 0 {
			return ""
		}
		s = strings.TrimLeftFunc(s[idx:], unicode.IsSpace)
	}

	return s
}
