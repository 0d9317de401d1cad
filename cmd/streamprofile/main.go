// Profiling:
// go build ./cmd/streamprofile
// ./streamprofile -mode cpu -size 40
// go tool pprof -http=":8000" ./streamprofile cpu.pprof

package main

import (
	"flag"
	"fmt"
	"os"

	"salvage-server/internal/sector"
	"salvage-server/internal/shared/config"
	"salvage-server/internal/shared/logger"

	"github.com/pkg/profile"
)

func main() {
	mode := flag.String("mode", "cpu", "profile to record: cpu or mem")
	size := flag.Int("size", 40, "world size in sectors per side")
	rounds := flag.Int("rounds", 3, "number of full sweeps across the world")
	visibleRange := flag.Int("range", sector.DefaultVisibleRange, "activation radius in sectors")
	flag.Parse()

	var kind func(*profile.Profile)
	switch *mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfileAllocs
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *mode)
		os.Exit(2)
	}

	cfg := config.WorldConfig{
		Size:         *size,
		SectorSize:   sector.DefaultSectorSize,
		VisibleRange: *visibleRange,
	}

	p := profile.Start(kind, profile.ProfilePath("."), profile.NoShutdownHook)
	steps, err := run(cfg, *rounds)
	p.Stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "streaming sweep failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("swept %dx%d world %d times in %d steps\n", *size, *size, *rounds, steps)
}

// run walks the player in a serpentine over every sector row, streaming the
// window in and drifting obstacles after each hop.
func run(cfg config.WorldConfig, rounds int) (int, error) {
	g := sector.NewGenerator(sector.NopWorld{}, cfg.VisibleRange, logger.Discard())
	steps := 0

	for range rounds {
		g.Cleanup()
		if err := g.Initialize(cfg.Size, cfg.SectorSize); err != nil {
			return 0, err
		}

		half := cfg.SectorSize / 2
		for row := range cfg.Size {
			y := float64(row)*cfg.SectorSize + half
			for col := range cfg.Size {
				if row%2 == 1 {
					col = cfg.Size - 1 - col
				}
				g.UpdateActiveSectors(float64(col)*cfg.SectorSize+half, y)
				g.Update()
				steps++
			}
		}
	}
	g.Cleanup()
	return steps, nil
}
