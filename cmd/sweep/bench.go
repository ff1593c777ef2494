package main

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zun-zs/minesweeper/internal/mines"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark board generation and the opening flood fill",
	RunE:  runBench,
}

func init() {
	addBoardFlags(benchCmd)
	benchCmd.Flags().IntP("count", "c", 1000, "boards to generate")
	benchCmd.Flags().Int("workers", runtime.NumCPU(), "parallel workers")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	params, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	workers, _ := cmd.Flags().GetInt("workers")
	if count < 1 || workers < 1 {
		return fmt.Errorf("count and workers must be positive")
	}

	var opened, wins atomic.Int64
	row, col := params.Height/2, params.Width/2

	start := time.Now()
	group, ctx := errgroup.WithContext(cmd.Context())
	group.SetLimit(workers)
	for range count {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			game, err := mines.NewGame(params, nil)
			if err != nil {
				return err
			}
			result, err := game.Reveal(row, col)
			if err != nil {
				return err
			}
			opened.Add(int64(len(result.Changed)))
			if result.Outcome == mines.Won {
				wins.Add(1)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	perBoard := elapsed / time.Duration(count)
	fmt.Printf("seed      %s\n", params.Seed())
	fmt.Printf("boards    %d (%d workers)\n", count, workers)
	fmt.Printf("elapsed   %s (%s per board)\n", elapsed.Round(time.Millisecond), perBoard)
	fmt.Printf("opened    %.1f cells per first reveal\n", float64(opened.Load())/float64(count))
	if w := wins.Load(); w > 0 {
		fmt.Printf("wins      %d boards solved by the first reveal\n", w)
	}
	return nil
}
