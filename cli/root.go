package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the healthreg command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "healthreg",
		Short: "Register deployment health checks with Consul and Sensu",
		Long: "healthreg registers the health checks bundled with a release with Consul and Sensu,\n" +
			"and removes the checks of the release it replaces.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to the configuration file")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("healthreg version %s\n", version))

	root.AddCommand(NewRegisterCmd())
	root.AddCommand(NewDeregisterCmd())
	root.AddCommand(NewValidateCmd())
	return root
}
