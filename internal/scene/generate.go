package scene

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"chosenoffset.com/slatcaster/internal/core/projection"
	"chosenoffset.com/slatcaster/internal/core/raycast"
)

// RandomWalls scatters n non-degenerate walls inside the box
// [-halfW, halfW] x [-halfH, halfH].
func RandomWalls(rng *rand.Rand, n, halfW, halfH int) []Wall {
	walls := make([]Wall, 0, n)
	for len(walls) < n {
		w := Wall{
			{rng.Intn(2*halfW+1) - halfW, rng.Intn(2*halfH+1) - halfH},
			{rng.Intn(2*halfW+1) - halfW, rng.Intn(2*halfH+1) - halfH},
		}
		if w[0] == w[1] {
			continue
		}
		walls = append(walls, w)
	}
	return walls
}

// BoxWalls returns the four walls of an axis-aligned room centred on the
// world origin.
func BoxWalls(halfW, halfH int) []Wall {
	return []Wall{
		{{-halfW, -halfH}, {halfW, -halfH}},
		{{halfW, -halfH}, {halfW, halfH}},
		{{halfW, halfH}, {-halfW, halfH}},
		{{-halfW, halfH}, {-halfW, -halfH}},
	}
}

// SaveConfig writes cfg as indented JSON, creating parent directories
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write scene config: %w", err)
	}
	return nil
}

// SampleConfigs returns the scenes bundled in data/scenes, keyed by file
// name: the demo level, an empty square room and a plain-mode copy of the
// demo's outer room.
func SampleConfigs() map[string]*Config {
	demo := DefaultConfig()

	square := DefaultConfig()
	square.Name = "square"
	square.Walls = BoxWalls(100, 100)
	square.WallColor = &projection.RGB{R: 120, G: 200, B: 255}
	square.Start = [2]int{0, 0}
	square.FOV = 90

	legacy := DefaultConfig()
	legacy.Name = "legacy"
	legacy.Walls = []Wall{
		{{-300, 175}, {300, 175}},
		{{-300, -175}, {300, -175}},
		{{-300, -175}, {-300, 175}},
		{{300, -175}, {300, 175}},
		{{-150, -50}, {-150, -175}},
		{{-150, -50}, {-250, -50}},
		{{-300, 50}, {-100, 50}},
		{{150, 0}, {150, 100}},
	}
	legacy.Mode = raycast.ModePlain
	legacy.SnapToGrid = true
	legacy.FOV = 60
	legacy.Step = 0.5

	return map[string]*Config{
		"demo.json":   demo,
		"square.json": square,
		"legacy.json": legacy,
	}
}

// RandomConfig is the top-down demo: n random walls inside a closed room,
// swept all the way round without fisheye correction.
func RandomConfig(seed int64, n int) *Config {
	cfg := DefaultConfig()
	cfg.Name = "random"
	cfg.Viewport = [2]int{1200, 700}
	cfg.Origin = [2]int{600, 350}
	cfg.Walls = append(BoxWalls(600, 350), RandomWalls(rand.New(rand.NewSource(seed)), n, 600, 350)...)
	cfg.Start = [2]int{0, 0}
	cfg.Mode = raycast.ModePlain
	cfg.FOV = raycast.MaxPlainFOV
	cfg.Workers = 4
	return cfg
}
