//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"firegrid/internal/app"
	"firegrid/internal/fire"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	simCfg := fire.DefaultConfig()
	if cfg.ConfigPath != "" {
		loaded, err := fire.LoadConfig(cfg.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		simCfg = loaded
	}

	eng := fire.New(simCfg, nil)
	eng.Reset(cfg.Seed)

	game := app.New(eng, cfg.Scale, cfg.Seed, cfg.HUDWidth)
	size := eng.Size()

	ebiten.SetWindowTitle("firegrid")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
