// Command kvcore is a small CLI harness over the storage engine core: it
// wires internal/config, internal/disk, internal/buffer, and internal/walsvc
// together the way a real server's startup path would, exposed as a couple
// of single-purpose subcommands in the teacher's cmd/ convention
// (cmd/seed, cmd/inspect_idx) combined with bunbase's cobra rootCmd/AddCommand
// wiring (platform/cmd/cli/main.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "kvcore",
	Short: "kvcore exercises the buffer pool, LRU-K replacer, and disk manager",
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file (optional)")
	rootCmd.AddCommand(statsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
