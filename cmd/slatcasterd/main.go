package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"chosenoffset.com/slatcaster/internal/scene"
	"chosenoffset.com/slatcaster/internal/transport/ws"
)

var (
	addr      = flag.String("addr", ":8080", "HTTP listen address")
	scenePath = flag.String("scene", "data/scenes/demo.json", "scene JSON file to serve")
	workers   = flag.Int("workers", 0, "goroutines per sweep; 0 keeps the scene setting")
)

func main() {
	flag.Parse()

	cfg, err := scene.LoadConfig(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	s, err := scene.New(cfg)
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}

	server := ws.NewServer(s)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Serving scene %q on %s (ws at /ws, walls at /scene)", s.Name(), *addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
