package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	flag.Parse()

	g := newGame(newLogger(*verboseFlag))
	if *stateFlag != "" {
		st, err := loadState(*stateFlag)
		if err != nil {
			log.Fatalf("Loading initial state failed: %v", err)
		}
		g.scene.SetState(st)
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			log.Fatalf("CPU profiling failed: %v", err)
		}
		defer stop()
	}
	if *recordDefaultPGO {
		stop, err := startCPUProfile(defaultPGOPath)
		if err != nil {
			log.Fatalf("PGO recording failed: %v", err)
		}
		log.Printf("Recording %s for %s", defaultPGOPath, pgoRecordDuration)
		g.enableAutoDrag(pgoRecordDuration, func() {
			stop()
			log.Printf("Wrote %s", defaultPGOPath)
		})
		defer stop()
	}

	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Phase Positions")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
