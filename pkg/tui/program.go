package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sternrassler/postfeed/pkg/pagination"
)

// StatusNotifier forwards coordinator notifications to a running program's
// status line. Until Attach is called notifications are dropped.
type StatusNotifier struct {
	program *tea.Program
}

// Attach binds the notifier to p.
func (n *StatusNotifier) Attach(p *tea.Program) {
	n.program = p
}

// Notify implements pagination.Notifier.
func (n *StatusNotifier) Notify(channelID, message string) {
	if n.program == nil {
		return
	}
	// Send blocks until the program reads the message; the coordinator
	// calls Notify from fetch goroutines, never from Update.
	n.program.Send(notificationMsg(fmt.Sprintf("[%s] %s", channelID, message)))
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	if opts.Coordinator == nil {
		return fmt.Errorf("tui: coordinator is required")
	}

	m := newModel(ctx, opts)

	programOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, programOpts...)
	p := tea.NewProgram(m, programOpts...)

	if opts.Status != nil {
		opts.Status.Attach(p)
	}
	opts.Coordinator.Subscribe(func(s pagination.Snapshot) {
		p.Send(snapshotMsg(s))
	})

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
