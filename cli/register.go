package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/healthreg/registrar"
)

// NewRegisterCmd creates the "register" subcommand.
func NewRegisterCmd() *cobra.Command {
	var flags deploymentFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the health checks of a release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRegister(cmd, &flags)
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func runRegister(cmd *cobra.Command, flags *deploymentFlags) error {
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
	results := make([]registrar.Result, 0, len(backends))
	for _, b := range backends {
		res, err := a.registrar.Register(cmd.Context(), b, d)
		printResult(out, "registered", res)
		if err != nil {
			return asExitError(err)
		}
		results = append(results, res)
	}
	if flags.dryRun {
		a.printDryRun(out, d, results)
	}
	return nil
}
