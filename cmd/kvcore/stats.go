package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "open the configured data directory and report buffer pool occupancy",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		s := e.pool.Stats()
		fmt.Printf("data dir:   %s\n", e.settings.DataDir)
		fmt.Printf("pool size:  %d\n", e.settings.PoolSize)
		fmt.Printf("replacer k: %d\n", e.settings.ReplacerK)
		fmt.Printf("resident:   %d/%d\n", s.Resident, s.Capacity)
		fmt.Printf("pinned:     %d\n", s.PinnedPages)
		fmt.Printf("dirty:      %d\n", s.DirtyPages)
		return nil
	},
}
