package arg

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addMinutes int

var addCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Add a clock",
	Long: `Add a clock with the given label. Without a label or --every the
configured defaults are used.
Examples:
  kenshoctl add Posture --every 20
  kenshoctl add`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addMinutes < 0 {
			return fmt.Errorf("--every must be positive")
		}
		label := strings.Join(args, " ")

		var key string
		if err := call("AddClock", []interface{}{&key}, label, int32(addMinutes)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Clock added: %s\n", key)
		return nil
	},
}

func init() {
	addCmd.Flags().IntVarP(&addMinutes, "every", "e", 0, "Interval in minutes")
	rootCmd.AddCommand(addCmd)
}
