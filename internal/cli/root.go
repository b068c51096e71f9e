package cli

import (
	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadConfig(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ordercenter",
		Short:         "Order placement and product catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", ".env", "config file, environment variables take precedence")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
