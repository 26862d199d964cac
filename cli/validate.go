package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewValidateCmd creates the "validate" subcommand.
func NewValidateCmd() *cobra.Command {
	var flags deploymentFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the health checks of a release without registering them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, &flags)
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func runValidate(cmd *cobra.Command, flags *deploymentFlags) error {
	backends, err := flags.backends()
	if err != nil {
		return err
	}
	// validation never writes, the in-memory overlay keeps it that way
	a, err := newApp(cmd, backends, true)
	if err != nil {
		return err
	}
	defer a.close(cmd.Context())

	d, err := flags.deployment(a.reader)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, b := range backends {
		ids, err := a.registrar.Validate(cmd.Context(), b, d)
		if err != nil {
			fmt.Fprintf(out, "%s: invalid: %v\n", b, err)
			return asExitError(err)
		}
		if len(ids) == 0 {
			fmt.Fprintf(out, "%s: no health checks\n", b)
			continue
		}
		fmt.Fprintf(out, "%s: %d valid (%s)\n", b, len(ids), strings.Join(ids, ", "))
	}
	return nil
}
