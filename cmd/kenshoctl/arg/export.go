package arg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <clock>",
	Short: "Export a clock's check-in history as CSV",
	Long: `Export every retained day of check-ins as CSV. The output goes to
stdout unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var csv string
		if err := call("ExportHistory", []interface{}{&csv}, args[0]); err != nil {
			return err
		}
		if exportOutput == "" {
			fmt.Fprint(cmd.OutOrStdout(), csv)
			return nil
		}
		if err := os.WriteFile(exportOutput, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "History written to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
