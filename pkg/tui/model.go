// Package tui implements the terminal rendering surfaces: the infinitely
// scrolling post list with its detail pane, and the todo list.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Sternrassler/postfeed/pkg/detail"
	"github.com/Sternrassler/postfeed/pkg/pagination"
	"github.com/Sternrassler/postfeed/pkg/permission"
	"github.com/Sternrassler/postfeed/pkg/selection"
	"github.com/Sternrassler/postfeed/pkg/todo"
)

type tab int

const (
	postsTab tab = iota
	todosTab
)

// Options for constructing the model.
type Options struct {
	Coordinator *pagination.Coordinator
	Items       detail.ItemFetcher
	Todos       *todo.List
	Permissions permission.Service
	Status      *StatusNotifier

	// EndThreshold is how many rows from the end of the list count as
	// "near end" and trigger the next page.
	EndThreshold int
}

type model struct {
	ctx   context.Context
	coord *pagination.Coordinator
	items detail.ItemFetcher
	todos *todo.List
	perms permission.Service

	endThreshold int

	width  int
	height int

	tab tab

	// posts tab
	snap      pagination.Snapshot
	cursor    int
	counter   int
	selection *selection.Selection
	view      *detail.View
	spinner   spinner.Model

	// todos tab
	todoCursor int
	input      textinput.Model
	adding     bool

	status string
	err    error
}

func newModel(ctx context.Context, opts Options) model {
	input := textinput.New()
	input.Placeholder = "Add new todo"
	input.CharLimit = 200

	threshold := opts.EndThreshold
	if threshold <= 0 {
		threshold = 3
	}

	return model{
		ctx:          ctx,
		coord:        opts.Coordinator,
		items:        opts.Items,
		todos:        opts.Todos,
		perms:        opts.Permissions,
		endThreshold: threshold,
		snap:         opts.Coordinator.Snapshot(),
		selection:    &selection.Selection{},
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		input:        input,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.mount())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case snapshotMsg:
		m.snap = pagination.Snapshot(msg)
		if m.cursor >= len(m.snap.Items) {
			m.cursor = max(len(m.snap.Items)-1, 0)
		}
		return m, nil
	case fetchDoneMsg:
		m.snap = m.coord.Snapshot()
		switch msg.outcome {
		case pagination.OutcomeFailed:
			m.err = m.snap.LastErr
		case pagination.OutcomeFetched:
			m.err = nil
		case pagination.OutcomeDenied:
			m.err = fmt.Errorf("permission denied")
		}
		if m.cursor >= len(m.snap.Items) {
			m.cursor = max(len(m.snap.Items)-1, 0)
		}
		return m, nil
	case detailDoneMsg:
		m.err = msg.err
		return m, nil
	case todoDoneMsg:
		m.err = msg.err
		return m, nil
	case notificationMsg:
		m.status = string(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.adding {
			return m.updateInput(msg)
		}
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.SwitchTab):
			if m.tab == postsTab && m.todos != nil {
				m.tab = todosTab
			} else {
				m.tab = postsTab
			}
			return m, nil
		}
		if m.tab == todosTab {
			return m.updateTodos(msg)
		}
		return m.updatePosts(msg)
	}
	return m, nil
}

func (m model) updatePosts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snap.Items)

	switch {
	case key.Matches(msg, keys.LineUp):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.LineDown):
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, m.checkEndReached()
	case key.Matches(msg, keys.GotoTop):
		m.cursor = 0
	case key.Matches(msg, keys.GotoBottom):
		m.cursor = max(n-1, 0)
		return m, m.checkEndReached()
	case key.Matches(msg, keys.Increment):
		m.counter++
	case key.Matches(msg, keys.Decrement):
		m.counter--
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, keys.Select):
		if n == 0 {
			return m, nil
		}
		item := m.snap.Items[m.cursor]
		if _, ok := m.selection.Toggle(item.ID); ok {
			m.view = detail.NewView(item, m.items)
		} else {
			m.view = nil
		}
	case key.Matches(msg, keys.Details):
		if m.view == nil || m.items == nil {
			return m, nil
		}
		return m, m.toggleDetails(m.view)
	}
	return m, nil
}

func (m model) updateTodos(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.todos.State()
	n := len(state.Todos)

	switch {
	case key.Matches(msg, keys.LineUp):
		if m.todoCursor > 0 {
			m.todoCursor--
		}
	case key.Matches(msg, keys.LineDown):
		if m.todoCursor < n-1 {
			m.todoCursor++
		}
	case key.Matches(msg, keys.AddTodo):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.ClearTodo):
		return m, m.todoCmd(func(ctx context.Context) error {
			return m.todos.ClearSelection(ctx)
		})
	}

	if n == 0 {
		return m, nil
	}
	id := state.Todos[min(m.todoCursor, n-1)].ID

	switch {
	case key.Matches(msg, keys.ToggleTodo):
		return m, m.todoCmd(func(ctx context.Context) error {
			_, err := m.todos.Toggle(ctx, id)
			return err
		})
	case key.Matches(msg, keys.RemoveTodo):
		if m.todoCursor >= n-1 && m.todoCursor > 0 {
			m.todoCursor--
		}
		return m, m.todoCmd(func(ctx context.Context) error {
			_, err := m.todos.Remove(ctx, id)
			return err
		})
	case key.Matches(msg, keys.SelectTodo):
		return m, m.todoCmd(func(ctx context.Context) error {
			_, err := m.todos.Select(ctx, id)
			return err
		})
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.adding = false
		m.input.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		text := m.input.Value()
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		return m, m.todoCmd(func(ctx context.Context) error {
			_, _, err := m.todos.Add(ctx, text)
			return err
		})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nearEnd reports whether the cursor is within endThreshold rows of the end
// of the loaded items.
func (m model) nearEnd() bool {
	n := len(m.snap.Items)
	return n > 0 && m.cursor >= n-m.endThreshold
}

func (m model) checkEndReached() tea.Cmd {
	if !m.nearEnd() || !m.snap.HasMore || m.snap.IsLoadingMore() {
		return nil
	}
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{outcome: coord.OnEndReached(ctx)}
	}
}

func (m model) mount() tea.Cmd {
	coord, ctx, perms := m.coord, m.ctx, m.perms
	return func() tea.Msg {
		return fetchDoneMsg{outcome: coord.Mount(ctx, perms)}
	}
}

func (m model) refresh() tea.Cmd {
	coord, ctx := m.coord, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{outcome: coord.Refresh(ctx)}
	}
}

func (m model) toggleDetails(v *detail.View) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return detailDoneMsg{id: v.Item().ID, err: v.Toggle(ctx)}
	}
}

func (m model) todoCmd(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return todoDoneMsg{err: fn(ctx)}
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.tab == todosTab {
		b.WriteString(m.renderTodos())
	} else {
		b.WriteString(m.renderPosts())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m model) renderTabs() string {
	posts, todos := tabStyle, tabStyle
	if m.tab == postsTab {
		posts = activeTab
	} else {
		todos = activeTab
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("postfeed "),
		posts.Render("Posts"),
		todos.Render("Todos"),
		mutedStyle.Render(fmt.Sprintf("  counter: %d", m.counter)),
	)
}

func (m model) renderPosts() string {
	if m.snap.IsLoadingInitial() {
		return m.spinner.View() + " Loading posts..."
	}

	var b strings.Builder
	items := m.snap.Items
	start, end := m.window(len(items))
	for i := start; i < end; i++ {
		line := items[i].String()
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("> " + line)
		case m.selection.IsSelected(items[i].ID):
			line = selectedStyle.Render("* " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch {
	case m.snap.IsLoadingMore():
		b.WriteString(m.spinner.View() + " Loading more...\n")
	case m.snap.Exhausted() && m.snap.Loaded:
		b.WriteString(mutedStyle.Render("  End of list") + "\n")
	}

	if m.view != nil {
		b.WriteString(m.renderDetail())
	}
	return b.String()
}

func (m model) renderDetail() string {
	item := m.view.Item()
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s\n", item.ID, item.Title)
	if details, ok := m.view.Details(); ok {
		b.WriteString(details.Body)
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("[d] Hide Details"))
	} else {
		b.WriteString(mutedStyle.Render("[d] View Details"))
	}
	return detailStyle.Render(b.String()) + "\n"
}

func (m model) renderTodos() string {
	var b strings.Builder

	if m.adding {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	state := m.todos.State()
	if sel, ok := state.Selected(); ok {
		b.WriteString(selectedStyle.Render("Selected Todo: "+sel.Text) + "\n\n")
	}
	if len(state.Todos) == 0 {
		b.WriteString(mutedStyle.Render("  No todos yet, press 'a' to add one") + "\n")
	}
	for i, t := range state.Todos {
		text := t.Text
		if t.Completed {
			text = doneStyle.Render(text)
		}
		if i == m.todoCursor {
			b.WriteString(cursorStyle.Render("> ") + text)
		} else {
			b.WriteString("  " + text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderFooter() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	if m.status != "" {
		parts = append(parts, mutedStyle.Render(m.status))
	}
	return strings.Join(parts, "  ")
}

// window returns the visible slice bounds keeping the cursor on screen.
func (m model) window(n int) (int, int) {
	rows := m.height - 8
	if m.view != nil {
		rows -= 6
	}
	if rows < 5 {
		rows = 5
	}
	if n <= rows {
		return 0, n
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
