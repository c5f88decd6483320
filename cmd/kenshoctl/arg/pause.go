package arg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pauseCmd = &cobra.Command{
	Use:     "pause <clock>",
	Aliases: []string{"resume"},
	Short:   "Pause a running clock or resume a paused one",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var paused bool
		if err := call("TogglePause", []interface{}{&paused}, args[0]); err != nil {
			return err
		}
		if paused {
			fmt.Fprintf(cmd.OutOrStdout(), "%s paused\n", args[0])
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s resumed\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pauseCmd)
}
