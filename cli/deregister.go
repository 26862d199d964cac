package cli

import (
	"github.com/spf13/cobra"
)

// NewDeregisterCmd creates the "deregister" subcommand.
func NewDeregisterCmd() *cobra.Command {
	var flags deploymentFlags
	cmd := &cobra.Command{
		Use:   "deregister",
		Short: "Remove the health checks of the previous release",
		Long: "Remove the health checks declared by the previous release. Without --last-id\n" +
			"there is nothing to remove and the command succeeds. Failures to remove a\n" +
			"single check are logged and never fail the command.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDeregister(cmd, &flags)
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func runDeregister(cmd *cobra.Command, flags *deploymentFlags) error {
	backends, err := flags.backends()
	if err != nil {
		return err
	}
	a, err := newApp(cmd, backends, flags.dryRun)
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
		res, err := a.registrar.Deregister(cmd.Context(), b, d)
		if err != nil {
			return asExitError(err)
		}
		printResult(out, "deregistered", res)
	}
	return nil
}
