package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/regime"
	"github.com/roach88/regime/internal/script"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	MachineID string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <definition> <script>",
		Short: "Run a script and emit the notification trace",
		Long: `Build a machine, run a script against it, and emit the full trace of
committed changes as canonical JSON. The trace is deterministic for a given
definition and script, which makes it suitable for golden-file comparison.

Example:
  regime trace ./machine.yaml ./scenario.yaml
  regime trace --id fixed ./machine.yaml ./scenario.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(opts.Verbose)

			var machineOpts []regime.Option
			if opts.MachineID != "" {
				machineOpts = append(machineOpts, regime.WithID(opts.MachineID))
			}
			m, err := buildMachine(args[0], machineOpts...)
			if err != nil {
				return err
			}
			s, err := loadScript(args[1])
			if err != nil {
				return err
			}

			res := script.Run(m, s)

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				data, err := script.MarshalResult(res)
				if err != nil {
					return WrapExitError(ExitFailure, "failed to marshal trace", err)
				}
				if _, err := out.Write(data); err != nil {
					return err
				}
			} else {
				for _, c := range res.Trace {
					switch {
					case c.Undo:
						fmt.Fprintf(out, "undo %s -> %s\n", c.From, c.To)
					case c.Redo:
						fmt.Fprintf(out, "redo %s -> %s\n", c.From, c.To)
					case c.Event != "":
						fmt.Fprintf(out, "%s %s -> %s\n", c.Event, c.From, c.To)
					default:
						fmt.Fprintf(out, "%s -> %s\n", c.From, c.To)
					}
				}
				fmt.Fprintf(out, "final: %s\n", res.Final)
			}

			if res.Failed() {
				return NewExitError(ExitFailure, "script finished with errors")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.MachineID, "id", "", "fixed machine instance ID (defaults to a generated UUID)")

	return cmd
}
