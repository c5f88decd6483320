package arg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <clock>",
	Short: "Record a check-in and restart the clock's interval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := call("CheckIn", nil, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Checked in on %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkinCmd)
}
