package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/roach88/regime"
	"github.com/roach88/regime/internal/script"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Script string
	Watch  bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <definition>",
		Short: "Run a machine interactively or from a script",
		Long: `Build a machine from a YAML definition and drive it.

With --script, the script's steps run to completion and the result is
printed. Without it, an interactive session reads commands from stdin:

  move <state>   attempt a move to the state
  fire <event>   trigger the named event
  undo / redo    revert or reapply the last undoable move
  state          print the current state
  history        print the history stack
  quit           exit

With --watch, the definition file is watched and the machine is rebuilt
(back at its initial state) whenever the file changes.

Example:
  regime run ./machine.yaml --script ./scenario.yaml
  regime run ./machine.yaml --watch`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts.Verbose)
			if opts.Script != "" {
				return runScripted(opts, args[0], cmd)
			}
			return runInteractive(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "path to a script to execute")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "rebuild the machine when the definition changes (interactive only)")

	return cmd
}

// runScripted executes a script against a freshly built machine and prints
// the result.
func runScripted(opts *RunOptions, defPath string, cmd *cobra.Command) error {
	m, err := buildMachine(defPath)
	if err != nil {
		return err
	}
	s, err := loadScript(opts.Script)
	if err != nil {
		return err
	}

	slog.Info("running script", "script", s.Name, "definition", defPath, "machine", m.ID())
	res := script.Run(m, s)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		data, err := script.MarshalResult(res)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to marshal result", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	} else {
		for i, sr := range res.Steps {
			status := "no-op"
			if sr.Applied {
				status = "applied"
			}
			if sr.Error != "" {
				status = "error: " + sr.Error
			}
			fmt.Fprintf(out, "%d. %s %s%s: %s\n", i+1, sr.Op, sr.To, sr.Event, status)
		}
		fmt.Fprintf(out, "final state: %s\n", res.Final)
	}

	if res.Failed() {
		return NewExitError(ExitFailure, "script finished with errors")
	}
	return nil
}

// runInteractive reads commands from stdin until EOF or quit. With --watch
// the definition file is watched and the machine is rebuilt on change; the
// rebuild happens between commands so the machine is never touched from
// another goroutine.
func runInteractive(opts *RunOptions, defPath string, cmd *cobra.Command) error {
	m, err := buildMachine(defPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	sub := m.Subscribe(changePrinter(out))
	defer func() { m.Unsubscribe(sub) }()

	reload := make(chan struct{}, 1)
	if opts.Watch {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		if err := watchDefinition(ctx, defPath, reload); err != nil {
			return WrapExitError(ExitCommandError, "failed to watch definition", err)
		}
	}

	fmt.Fprintf(out, "machine %s ready, state: %s\n", m.ID(), m.Current())

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		// Apply a pending definition reload before the next command.
		select {
		case <-reload:
			rebuilt, err := buildMachine(defPath)
			if err != nil {
				slog.Error("definition reload failed, keeping current machine", "error", err)
			} else {
				m.Unsubscribe(sub)
				m = rebuilt
				sub = m.Subscribe(changePrinter(out))
				slog.Info("definition reloaded", "machine", m.ID(), "state", m.Current())
			}
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		execCommand(m, out, line)
	}
	return scanner.Err()
}

// execCommand dispatches one interactive command line.
func execCommand(m *regime.Machine, out io.Writer, line string) {
	fields := strings.Fields(line)
	verb, rest := fields[0], fields[1:]

	switch verb {
	case "move":
		if len(rest) != 1 {
			fmt.Fprintln(out, "usage: move <state>")
			return
		}
		applied, err := m.Move(regime.State(rest[0]), nil)
		reportOutcome(out, applied, err)
	case "fire":
		if len(rest) != 1 {
			fmt.Fprintln(out, "usage: fire <event>")
			return
		}
		applied, err := m.Trigger(rest[0], nil)
		reportOutcome(out, applied, err)
	case "undo":
		reportOutcome(out, m.Undo(), nil)
	case "redo":
		reportOutcome(out, m.Redo(), nil)
	case "state":
		fmt.Fprintln(out, m.Current())
	case "history":
		snap := m.History()
		for i, rec := range snap.Records {
			marker := "  "
			if i == snap.Cursor {
				marker = "* "
			}
			if rec.Event != "" {
				fmt.Fprintf(out, "%s%s (event=%s)\n", marker, rec.State, rec.Event)
			} else {
				fmt.Fprintf(out, "%s%s\n", marker, rec.State)
			}
		}
	default:
		fmt.Fprintf(out, "unknown command %q\n", verb)
	}
}

func reportOutcome(out io.Writer, applied bool, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(out, "error: %v\n", err)
	case !applied:
		fmt.Fprintln(out, "no-op")
	}
}

// changePrinter returns a subscriber that prints committed changes.
func changePrinter(out io.Writer) regime.Subscriber {
	return func(c regime.Change) {
		switch {
		case c.Undo:
			fmt.Fprintf(out, "undo: %s -> %s\n", c.From, c.To)
		case c.Redo:
			fmt.Fprintf(out, "redo: %s -> %s\n", c.From, c.To)
		case c.Event != "":
			fmt.Fprintf(out, "%s: %s -> %s\n", c.Event, c.From, c.To)
		default:
			fmt.Fprintf(out, "%s -> %s\n", c.From, c.To)
		}
	}
}

// watchDefinition signals on reload whenever the definition file changes.
// The signal channel is buffered and coalesces bursts of write events.
func watchDefinition(ctx context.Context, path string, reload chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					select {
					case reload <- struct{}{}:
					default:
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("definition watcher error", "error", err)
			}
		}
	}()
	return nil
}
