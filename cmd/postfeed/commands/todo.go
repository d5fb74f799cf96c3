package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/postfeed/pkg/todo"
)

// todo add|list|toggle|remove|select|clear
func todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the persisted todo list",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text>",
			Short: "Add a todo",
			Args:  cobra.ExactArgs(1),
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				t, ok, err := list.Add(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("todo text is empty")
				}
				fmt.Fprintln(w, t.ID)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List todos",
			Args:  cobra.NoArgs,
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				printTodos(w, list.State())
				return nil
			}),
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Toggle completion of a todo",
			Args:  cobra.ExactArgs(1),
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				ok, err := list.Toggle(ctx, args[0])
				return requireFound(args[0], ok, err)
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a todo",
			Args:  cobra.ExactArgs(1),
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				ok, err := list.Remove(ctx, args[0])
				return requireFound(args[0], ok, err)
			}),
		},
		&cobra.Command{
			Use:   "select <id>",
			Short: "Select a todo",
			Args:  cobra.ExactArgs(1),
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				ok, err := list.Select(ctx, args[0])
				return requireFound(args[0], ok, err)
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Clear the selected todo",
			Args:  cobra.NoArgs,
			RunE: withTodos(func(ctx context.Context, list *todo.List, w io.Writer, args []string) error {
				return list.ClearSelection(ctx)
			}),
		},
	)
	return cmd
}

type todoAction func(ctx context.Context, list *todo.List, w io.Writer, args []string) error

// withTodos opens the configured store around fn.
func withTodos(fn todoAction) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openTodoStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		list, err := todo.Open(ctx, store)
		if err != nil {
			return err
		}
		return fn(ctx, list, cmd.OutOrStdout(), args)
	}
}

func requireFound(id string, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no todo with id %q", id)
	}
	return nil
}

// printTodos writes one line per todo: "[x] id text", with "*" marking the
// selected one.
func printTodos(w io.Writer, state todo.State) {
	if len(state.Todos) == 0 {
		fmt.Fprintln(w, "no todos")
		return
	}
	for _, t := range state.Todos {
		done := " "
		if t.Completed {
			done = "x"
		}
		mark := " "
		if t.ID == state.SelectedID {
			mark = "*"
		}
		fmt.Fprintf(w, "%s[%s] %s %s\n", mark, done, t.ID, t.Text)
	}
}
