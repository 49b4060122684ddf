package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "fimgo",
	Short:         "fimgo — closed frequent itemset miner",
	Long:          "Mines closed frequent itemsets, or the top-k closed itemsets of every item, from FIMI transaction files.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(showCmd)
}
