package arg

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check if Kensho is running and summarize its clocks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var result string
		if err := call("GetStatus", []interface{}{&result}); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Kensho Status:", result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
