package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <definition>",
		Short: "Validate a machine definition file",
		Long: `Validate a YAML machine definition without building a machine.

All validation errors are collected and reported in one pass.

Example:
  regime validate ./machine.yaml
  regime validate --format json ./machine.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

			doc, errs, err := loadDefinition(args[0])
			if err != nil {
				return err
			}
			if len(errs) > 0 {
				if ferr := formatter.Failure(errs); ferr != nil {
					return ferr
				}
				return NewExitError(ExitFailure, fmt.Sprintf("definition invalid: %d error(s)", len(errs)))
			}

			if rootOpts.Format == "json" {
				return formatter.Success(map[string]any{
					"initial":     doc.Initial,
					"transitions": len(doc.Transitions),
					"events":      len(doc.Events),
				})
			}
			return formatter.Success(fmt.Sprintf(
				"✓ definition valid (initial=%s, transitions=%d, events=%d)",
				doc.Initial, len(doc.Transitions), len(doc.Events),
			))
		},
	}

	return cmd
}
