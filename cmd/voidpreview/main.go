// Void preview tool - plays a scripted session for a while and renders the
// resulting scene to a PNG file for inspection.
//
// Usage: go run ./cmd/voidpreview -play 300 -out void.png
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/akorn123w/FishingInTheVoid/config"
	"github.com/akorn123w/FishingInTheVoid/game"
	"github.com/akorn123w/FishingInTheVoid/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "void.png", "Output PNG path")
	width := flag.Int("width", 800, "Render width")
	height := flag.Int("height", 800, "Render height")
	play := flag.Float64("play", 0, "Seconds of scripted play before capture")
	cps := flag.Float64("cps", 6, "Scripted clicks per second")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	g, err := game.NewGame(cfg, game.Options{Seed: *seed})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}

	start := time.Unix(0, 0)
	res := game.Simulate(g, game.NewAutoplayer(*cps, true), start, 50*time.Millisecond, time.Duration(*play*float64(time.Second)))
	now := start.Add(res.Elapsed)
	snap := g.Snapshot(now)

	// Initialize raylib with hidden window
	w, h := int32(*width), int32(*height)
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(w, h, "Void Preview")
	defer rl.CloseWindow()

	bg := renderer.NewBackgroundRenderer(w, h, 6, 10, 22)
	bg.Init()
	defer bg.Unload()

	space := renderer.NewSpace(float32(w), float32(h))
	ambient := renderer.NewAmbientRenderer()
	colony := renderer.NewColonyRenderer()
	sx, sy := g.SquidPosition()

	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	bg.Draw(float32(res.Elapsed.Seconds()), float32(snap.BackgroundOpacity))
	ambient.Draw(space, g.AppendAmbient(ambient.Buffer()))
	colony.Draw(space, renderer.ColonyView{
		Cells:     g.Cells(),
		Center:    space.ToScreen(sx, sy),
		Diameter:  float32(cfg.Division.CellDiameter),
		Growth:    float32(snap.GrowthScale),
		Organelle: float32(snap.OrganelleOpacity),
		Morph:     float32(snap.MorphProgress),
	})
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if !success {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
	fmt.Printf("Rendered %s after %s (%s, %d clicks) to %s\n",
		res.Reached, res.Elapsed, snap.Stage, res.Clicks, *outPath)
}
