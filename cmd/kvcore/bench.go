package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arjunmenon/kvcore/internal/page"
)

var benchPages int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "allocate more pages than fit in the pool and report eviction/reload behavior",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		defer e.Close()

		n := benchPages
		if n <= 0 {
			n = 2 * e.settings.PoolSize
		}

		ids := make([]page.ID, 0, n)
		for i := 0; i < n; i++ {
			id, frame, err := e.pool.NewPage()
			if err != nil {
				return fmt.Errorf("kvcore: new page %d: %w", i, err)
			}
			frame.Data[0] = byte(i)
			lsn := e.wal.Append()
			e.pool.SetPageLSN(id, lsn)
			e.wal.MarkFlushed(lsn)
			e.pool.UnpinPage(id, true)
			ids = append(ids, id)
		}

		fmt.Printf("allocated %d pages against a %d-frame pool\n", n, e.settings.PoolSize)
		if n > e.settings.PoolSize {
			fmt.Printf("at least %d eviction(s) must have occurred\n", n-e.settings.PoolSize)
		}

		mismatches := 0
		for i, id := range ids {
			frame, err := e.pool.FetchPage(id)
			if err != nil {
				return fmt.Errorf("kvcore: fetch page %d back: %w", id, err)
			}
			if frame.Data[0] != byte(i) {
				mismatches++
			}
			e.pool.UnpinPage(id, false)
		}
		fmt.Printf("verified round trip of all %d pages, %d mismatch(es)\n", n, mismatches)

		s := e.pool.Stats()
		fmt.Printf("final resident: %d/%d, dirty: %d\n", s.Resident, s.Capacity, s.DirtyPages)
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchPages, "pages", 0, "number of pages to allocate (default 2x pool size)")
}
