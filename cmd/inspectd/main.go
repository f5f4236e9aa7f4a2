package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"firegrid/internal/core"
	"firegrid/internal/fire"
	"firegrid/internal/inspect"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8777", "listen address")
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "world seed (0 uses the config seed)")
	frameEvery := flag.Int("frame-every", 2, "broadcast a frame every N ticks")
	flag.Parse()

	logger := log.New(os.Stderr, "inspectd ", log.LstdFlags)

	cfg := fire.DefaultConfig()
	if *configPath != "" {
		loaded, err := fire.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal(err)
		}
		cfg = loaded
	}
	if *frameEvery < 1 {
		*frameEvery = 1
	}

	eng := fire.New(cfg, nil)
	eng.Reset(*seed)

	srv := inspect.NewServer(cfg, logger)
	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap", srv.BootstrapHandler())
	mux.HandleFunc("/ws", srv.WSHandler())

	go func() {
		logger.Printf("listening on %s", *addr)
		if err := http.ListenAndServe(*addr, mux); err != nil {
			logger.Fatal(err)
		}
	}()

	// The engine is single-threaded: every mutation, including queued client
	// commands, happens on this loop.
	timer := core.NewFixedStep(cfg.TickRate)
	last := time.Now()
	for {
		if !timer.ShouldStep() {
			time.Sleep(time.Millisecond)
			continue
		}
		now := time.Now()
		srv.Apply(eng)
		eng.Advance(now.Sub(last))
		last = now
		if eng.Tick()%uint64(*frameEvery) == 0 {
			srv.BroadcastFrame(eng)
		}
	}
}
