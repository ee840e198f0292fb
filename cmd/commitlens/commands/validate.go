package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/commit"
)

// ErrValidationFailed is returned when a payload violates the commit schema.
var ErrValidationFailed = errors.New("commit payload validation failed")

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate <commits.json|->",
		Short: "Validate a commit payload against the commit schema",
		Long: `Validate a JSON array of repository commit payloads against the embedded
commit schema.

Examples:
  commitlens validate commits.json
  commitlens validate - < commits.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], noColor)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, noColor bool) error {
	data, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	if noColor {
		ok.DisableColor()
		bad.DisableColor()
	}

	out := cmd.OutOrStdout()

	validateErr := commit.Validate(data)
	if validateErr == nil {
		ok.Fprintf(out, "Commit payload is valid (%s)\n", path)

		return nil
	}

	var verr *commit.ValidationError
	if !errors.As(validateErr, &verr) {
		return validateErr
	}

	bad.Fprintf(out, "Commit payload is invalid (%s)\n", path)

	for _, v := range verr.Violations {
		bad.Fprintf(out, "  - %s: %s\n", v.Field, v.Description)
	}

	return fmt.Errorf("%w: %d violation(s)", ErrValidationFailed, len(verr.Violations))
}
