package cmd

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// printConfigCmd represents the printConfig command.
var printConfigCmd = &cobra.Command{
	Use:   "printConfig",
	Short: "Print the effective configuration",
	Long: `printConfig dumps the configuration in effect after merging defaults,
the config file and flags.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		spew.Fdump(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(printConfigCmd)
}
