package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configPath := flag.String("config", "", "path to a .json or .toml config file")
	quiet := flag.Bool("quiet", false, "discard actor system logs")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configPath); err != nil {
			log.Fatalf("💥 %v", err)
		}
	}

	logger := golog.DefaultLogger
	if *quiet {
		logger = golog.DiscardLogger
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("TextSwarm",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		log.Fatalf("💥 cannot create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("💥 cannot start actor system: %v", err)
	}
	defer system.Stop(ctx)

	game, err := simulation.GetNewGame(ctx, cfg, system)
	if err != nil {
		log.Fatalf("💥 %v", err)
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("Text Swarm")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
