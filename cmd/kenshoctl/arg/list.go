package arg

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/kensho/internal/engine"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List clocks with their progress",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var result string
		if err := call("ListClocks", []interface{}{&result}); err != nil {
			return err
		}
		if listJSON {
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		}

		var update engine.Update
		if err := json.Unmarshal([]byte(result), &update); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return printClocks(cmd.OutOrStdout(), update)
	},
}

func printClocks(w io.Writer, update engine.Update) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tEVERY\tSTATE\tREMAINING\tTODAY")
	for _, c := range update.Clocks {
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%s\t%s\t%d\n",
			c.Identifier, c.Label, c.IntervalMinutes, clockState(c), remaining(c.RemainingSeconds), c.CheckInsToday)
	}
	fmt.Fprintf(tw, "\n%d of %d slots used\n", len(update.Clocks), update.Capacity)
	return tw.Flush()
}

func clockState(c engine.View) string {
	switch {
	case c.Due:
		return "due"
	case c.Paused:
		return "paused"
	}
	return "running"
}

func remaining(seconds float64) string {
	total := int(seconds + 0.999)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the raw JSON snapshot")
	rootCmd.AddCommand(listCmd)
}
