package main

import (
	"flag"
	"fmt"
	"log"

	"chosenoffset.com/walkgrid/internal/config"
	"chosenoffset.com/walkgrid/internal/core/walkability"
	"chosenoffset.com/walkgrid/internal/nav/pathfind"
	ebitenrender "chosenoffset.com/walkgrid/internal/render/ebiten"
	"chosenoffset.com/walkgrid/internal/render/markers"
	"chosenoffset.com/walkgrid/internal/render/plotexport"
	"chosenoffset.com/walkgrid/internal/viewer"
	"chosenoffset.com/walkgrid/internal/world/grid"
	"chosenoffset.com/walkgrid/internal/world/scene"
)

func main() {
	scenePath := flag.String("scene", "", "Scene file to load (default: first scene in -dir)")
	sceneDir := flag.String("dir", "data/scenes", "Directory scanned for scene files")
	configPath := flag.String("config", "", "Optional JSON config file")
	pngPath := flag.String("png", "", "Write an image of the pass to this file and exit")
	list := flag.Bool("list", false, "List available scenes and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Scanning scene directory...")
	entries, err := scene.ScanDirectory(*sceneDir)
	if err != nil && (*list || *scenePath == "") {
		log.Fatalf("Failed to scan scene directory: %v", err)
	}
	if *list {
		for _, e := range entries {
			fmt.Printf("%-24s %s\n", e.Name, e.Path)
		}
		return
	}

	path := *scenePath
	if path == "" {
		if len(entries) == 0 {
			log.Fatalf("No scene files in %s", *sceneDir)
		}
		path = entries[0].Path
	}

	sc, err := scene.Load(path)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	log.Printf("Loaded scene %q: %dx%d cells, %d obstacles", sc.Name, sc.Grid.SizeX, sc.Grid.SizeY, len(sc.Obstacles))

	predicates := cfg.Predicates()
	layout := sc.Layout(predicates.Plane)
	g, err := grid.New(layout)
	if err != nil {
		log.Fatalf("Failed to create grid: %v", err)
	}

	pathfinder := pathfind.New(g, pathfind.WithDiagonal(cfg.AllowDiagonal))
	layer := markers.NewLayer()
	rasterizer := walkability.NewRasterizer(g, predicates, cfg.RasterOptions(), pathfinder, layer)
	rasterizer.SetEndpoints(walkability.Endpoints{Seeker: sc.Seeker, Target: sc.Target})

	regions := sc.Regions(layout, predicates)
	report, err := rasterizer.SetWalkability(regions, layout.SizeX, layout.SizeY)
	if err != nil {
		log.Fatalf("Walkability pass failed: %v", err)
	}

	if *pngPath != "" {
		snap := plotexport.Snapshot{
			Title:     sc.Name,
			Layout:    layout,
			Markers:   layer.Markers(),
			Waypoints: pathfinder.Waypoints(),
			Seeker:    sc.Seeker,
			Target:    sc.Target,
		}
		if err := plotexport.Save(*pngPath, snap, plotexport.DefaultSize); err != nil {
			log.Fatalf("Failed to export: %v", err)
		}
		log.Printf("Wrote %s", *pngPath)
		return
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	v := &viewer.Viewer{
		ScreenWidth:   cfg.ScreenWidth,
		ScreenHeight:  cfg.ScreenHeight,
		PixelsPerUnit: cfg.PixelsPerUnit,
		Renderer:      renderer,
		InputMgr:      inputMgr,
		Grid:          g,
		Pathfinder:    pathfinder,
		Rasterizer:    rasterizer,
		Markers:       layer,
		Regions:       regions,
		LastReport:    report,
	}

	engine.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	engine.SetWindowTitle("Walkgrid - " + sc.Name)
	engine.SetWindowResizable(true)

	log.Println("Starting viewer...")
	if err := engine.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
