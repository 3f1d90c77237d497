package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/blockbattle/pkg/app"
	"github.com/gonewx/blockbattle/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	debug := flag.Bool("debug", false, "Show debug counters")
	rogue := flag.Bool("rogue", false, "Enable the rogue robot")
	debugAddr := flag.String("debug-addr", "", "Serve debug counters over HTTP (e.g. 127.0.0.1:6060)")
	wave := flag.Int("wave", 1, "First wave to play")
	dataDir := flag.String("data", "data", "Game data directory (\"data\" uses embedded files)")
	skipArmory := flag.Bool("quick", false, "Skip the armory and start with the default loadout")
	seed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		DataDir:    *dataDir,
		StartWave:  *wave,
		Rogue:      *rogue,
		Debug:      *debug,
		DebugAddr:  *debugAddr,
		SkipArmory: *skipArmory,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Block Battle")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
