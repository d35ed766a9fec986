package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"chosenoffset.com/slatcaster/internal/scene"
)

func main() {
	out := flag.String("out", "data/scenes", "directory to write scenes into")
	random := flag.Int("random", 0, "also write random.json with this many random walls")
	seed := flag.Int64("seed", 1, "seed for the random scene")
	flag.Parse()

	fmt.Println("Scene Generator")
	fmt.Println("===============")

	samples := scene.SampleConfigs()
	if *random > 0 {
		samples["random.json"] = scene.RandomConfig(*seed, *random)
	}
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(*out, name)
		if err := scene.SaveConfig(path, samples[name]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  wrote %s (%d walls)\n", path, len(samples[name].Walls))
	}
}
