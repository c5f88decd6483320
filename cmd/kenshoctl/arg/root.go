package arg

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/kensho/internal/bus"
	"github.com/SoarinFerret/kensho/internal/ipc"
)

var rootCmd = &cobra.Command{
	Use:   "kenshoctl",
	Short: "kenshoctl is the command line tool for Kensho",
	Long: `kenshoctl talks to a running Kensho instance over the session bus.
Clocks are addressed by their position (C1, C2, ...) or by their key.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// call invokes method on the running instance. Reply values are stored
// into out.
func call(method string, out []interface{}, args ...interface{}) error {
	conn, err := bus.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := ipc.Call(conn, method, out, args...); err != nil {
		return fmt.Errorf("is kensho running? %w", err)
	}
	return nil
}
