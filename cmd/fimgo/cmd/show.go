package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/fimgo/sink"
	"github.com/hupe1980/fimgo/sink/bolt"
)

var showCmd = &cobra.Command{
	Use:   "show <database> <run>",
	Short: "Print the patterns of a run stored with --bolt-run",
	Args:  cobra.ExactArgs(2),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	patterns, err := bolt.Read(args[0], args[1])
	if err != nil {
		return err
	}

	w := sink.NewWriter(unclosable{cmd.OutOrStdout()})
	for _, p := range patterns {
		w.Collect(p.Support, p.Items)
	}
	_, err = w.Close()
	return err
}
