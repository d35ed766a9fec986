package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chosenoffset.com/slatcaster/internal/core/raycast"
	"chosenoffset.com/slatcaster/internal/game"
	ebitenrender "chosenoffset.com/slatcaster/internal/render/ebiten"
	"chosenoffset.com/slatcaster/internal/scene"
)

var (
	scenesDir = flag.String("scenes", "data/scenes", "directory holding scene JSON files")
	sceneName = flag.String("scene", "demo", "scene to open (file name without .json)")
	listFlag  = flag.Bool("list", false, "list available scenes and exit")
	plainFlag = flag.Bool("plain", false, "skip fisheye correction (legacy projection)")
	workers   = flag.Int("workers", 0, "goroutines per sweep; 0 keeps the scene setting")
	display   = flag.String("display", "split", "views to show: split, world or map")
)

func main() {
	flag.Parse()

	log.Println("Scanning scene directory...")
	scenes, err := scene.ScanDirectory(*scenesDir)
	if err != nil {
		log.Printf("Warning: %v; using the built-in demo", err)
	}

	if *listFlag {
		for _, e := range scenes {
			fmt.Println(e.Name)
		}
		return
	}

	cfg := scene.DefaultConfig()
	if entry, ok := scene.Find(scenes, *sceneName); ok {
		cfg, err = scene.LoadConfig(entry.Path)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
	} else if *sceneName != "demo" {
		fmt.Fprintf(os.Stderr, "Error: scene %q not found in %s\n", *sceneName, *scenesDir)
		os.Exit(1)
	}
	if *plainFlag {
		cfg.Mode = raycast.ModePlain
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	s, err := scene.New(cfg)
	if err != nil {
		log.Fatalf("Invalid scene: %v", err)
	}
	log.Printf("Loaded scene %q: %d walls, %s projection", s.Name(), len(s.Walls()), cfg.Mode)

	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	viewer, err := game.New(s, renderer, inputMgr)
	if err != nil {
		log.Fatalf("Failed to start viewer: %v", err)
	}
	d, err := game.ParseDisplay(*display)
	if err != nil {
		log.Fatalf("Invalid -display: %v", err)
	}
	if err := viewer.SetDisplay(d); err != nil {
		log.Fatalf("Failed to switch display: %v", err)
	}

	w, h := viewer.Layout(0, 0)
	engine.SetWindowSize(w, h)
	engine.SetWindowTitle("slatcaster - " + s.Name())
	engine.SetWindowResizable(true)

	log.Println("Starting viewer...")
	if err := engine.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
