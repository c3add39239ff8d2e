// Command soak runs the arena headless over many seeds with the autopilot at
// the controls and prints how far each run got. It is meant for checking a
// balance table before playing it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

const dt = 1.0 / 60

type result struct {
	seed    int64
	wave    int
	kills   int
	level   int
	seconds float64
	died    bool
}

func main() {
	seeds := flag.Int("seeds", 16, "number of runs")
	first := flag.Int64("seed", 1, "seed of the first run; later runs count up from it")
	minutes := flag.Float64("minutes", 5, "simulated time limit per run")
	balancePath := flag.String("balance", "", "path to a balance yaml (defaults to the embedded table)")
	workers := flag.Int("j", runtime.NumCPU(), "runs in parallel")
	flag.Parse()

	balance, err := loadBalance(*balancePath)
	if err != nil {
		log.Fatal(err)
	}

	results := make([]result, *seeds)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(1, *workers))
	for i := range results {
		seed := *first + int64(i)
		g.Go(func() error {
			r, err := soak(ctx, balance, seed, int(*minutes*60/dt))
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "seed\twave\tkills\tlevel\ttime\tdied\t")
	deaths := 0
	for _, r := range results {
		if r.died {
			deaths++
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1fs\t%v\t\n", r.seed, r.wave, r.kills, r.level, r.seconds, r.died)
	}
	_ = tw.Flush()
	fmt.Printf("%d/%d runs died before the time limit\n", deaths, len(results))
}

func loadBalance(path string) (*prefabs.Balance, error) {
	if path == "" {
		return prefabs.LoadBalance(prefabs.BalanceFile)
	}
	prefabs.DiskRoot = filepath.Dir(path)
	return prefabs.LoadBalance(filepath.Base(path))
}

func soak(ctx context.Context, balance *prefabs.Balance, seed int64, frames int) (result, error) {
	sim, err := arena.New(arena.Options{Balance: balance, Seed: seed})
	if err != nil {
		return result{}, err
	}
	pilot := arena.NewAutopilot(sim)
	r := result{seed: seed}

	for f := 0; f < frames; f++ {
		if f%600 == 0 {
			if err := ctx.Err(); err != nil {
				return result{}, err
			}
		}
		pilot.Plan()
		sim.Step(dt, pilot)
		for _, evt := range sim.Events() {
			switch evt.Type {
			case system.EventEnemyKilled:
				r.kills++
			case system.EventLevelUp:
				if level, ok := evt.Data.(int); ok {
					r.level = level
				}
			case system.EventPlayerDied:
				r.died = true
			}
		}
		if sim.State(sim.Player()) == component.StateRemoved {
			break
		}
	}
	r.wave = sim.Wave()
	r.seconds = sim.Time()
	return r, nil
}
