// Command debug_match runs the template matcher against a saved screenshot
// instead of a live screen, so detection problems can be reproduced offline.
//
// Usage: debug_match <screenshot.png> [assets-dir]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mangoba/admute/internal/engine"
	"github.com/mangoba/admute/internal/engine/screen"
	"github.com/mangoba/admute/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debug_match <screenshot.png> [assets-dir]")
		os.Exit(2)
	}
	screenPath := os.Args[1]
	assetsDir := "assets"
	if len(os.Args) > 2 {
		assetsDir = os.Args[2]
	}

	searcher := screen.NewSearcher()
	log := logger.New(true, nil)

	screenImg, err := searcher.LoadImage(screenPath)
	if err != nil {
		fmt.Printf("Failed to load screenshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Screenshot size: %dx%d\n", screenImg.Bounds().Dx(), screenImg.Bounds().Dy())

	assets, err := engine.LoadAssets(searcher, assetsDir, log)
	if err != nil {
		fmt.Printf("Failed to load assets: %v\n", err)
		os.Exit(1)
	}

	templates := assets.Ads
	if assets.MutedIcon != nil {
		templates = append(templates, engine.Template{Name: filepath.Join("volume", "mute.png"), Image: assets.MutedIcon})
	}
	if assets.UnmutedIcon != nil {
		templates = append(templates, engine.Template{Name: filepath.Join("volume", "volume.png"), Image: assets.UnmutedIcon})
	}

	for _, tpl := range templates {
		fmt.Printf("\n=== %s (%dx%d) ===\n", tpl.Name, tpl.Image.Bounds().Dx(), tpl.Image.Bounds().Dy())
		for _, tolerance := range []float64{30, 45, 60, 80} {
			if pt, ok := searcher.Locate(screenImg, tpl.Image, tolerance); ok {
				fmt.Printf("  tolerance %3.0f: FOUND center (%d, %d)\n", tolerance, pt.X, pt.Y)
			} else {
				fmt.Printf("  tolerance %3.0f: not found\n", tolerance)
			}
		}
	}
}
