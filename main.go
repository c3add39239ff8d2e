package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", 0, "random seed; 0 picks one from the clock")
	debug := flag.Bool("debug", false, "enable debug overlay")
	balance := flag.String("balance", "", "path to a balance yaml (defaults to the embedded table)")
	wave := flag.Int("wave", 1, "wave to start on")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload balance and death scripts when they change on disk")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("arena")

	game, err := NewGame(gameConfig{
		Seed:      *seed,
		Debug:     *debug,
		Balance:   *balance,
		StartWave: *wave,
		Watch:     *watch,
		Mute:      *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
