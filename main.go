package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line; set records which flags were given explicitly
type options struct {
	configFile  string
	sceneName   string
	width       int
	height      int
	depth       int
	supersample int
	workers     int
	output      string
	set         map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configFile, "config", "", "Render config file, .toml or .json (flags override its values)")
	flag.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name, scene file name in scenes/, or path to a .json scene")
	flag.IntVar(&opts.width, "width", 0, "Output width in pixels (default: scene setting)")
	flag.IntVar(&opts.height, "height", 0, "Output height in pixels (default: scene setting)")
	flag.IntVar(&opts.depth, "depth", 1, "Maximum reflection depth")
	flag.IntVar(&opts.supersample, "supersample", 1, "Render at this multiple of the output size, then downfilter")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.StringVar(&opts.output, "output", "", "Output PNG path (default: output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, name := range scene.BuiltinSceneNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, opts options) error {
	config, fromFile, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(config.SceneConfig)
	if err != nil {
		return err
	}

	// Scene settings fill in whatever neither the flags nor a config file chose
	if !fromFile {
		if !opts.set["width"] {
			config.Width = selectedScene.Settings.Width
		}
		if !opts.set["height"] {
			config.Height = selectedScene.Settings.Height
		}
		if !opts.set["depth"] {
			config.ReflectionDepth = selectedScene.Settings.MaxDepth
		}
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	fmt.Printf("Scene %s: %d surfaces, %d lights\n",
		config.SceneConfig, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights))

	img, err := renderImage(ctx, selectedScene, config, opts.workers)
	if err != nil {
		return err
	}

	filename := config.OutputFile
	if filename == "" {
		filename = filepath.Join(createOutputDir(config.SceneConfig),
			fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}
	if err := savePNG(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// resolveConfig merges the config file, if any, with explicitly set flags
func resolveConfig(opts options) (loaders.Config, bool, error) {
	config := loaders.DefaultConfig()
	fromFile := false

	if opts.configFile != "" {
		loaded, err := loaders.LoadConfig(opts.configFile)
		if err != nil {
			return config, false, err
		}
		config = *loaded
		fromFile = true
	}

	if opts.set["scene"] || !fromFile {
		config.SceneConfig = opts.sceneName
	}
	if opts.set["width"] {
		config.Width = opts.width
	}
	if opts.set["height"] {
		config.Height = opts.height
	}
	if opts.set["depth"] {
		config.ReflectionDepth = opts.depth
	}
	if opts.set["supersample"] {
		config.Supersampling = opts.supersample
	}
	if opts.set["output"] {
		config.OutputFile = opts.output
	}

	return config, fromFile, nil
}

// renderImage renders at the supersampled size and filters down to the output size.
// An interrupt cancels the render before any file is written.
func renderImage(ctx context.Context, s *scene.Scene, config loaders.Config, workers int) (*image.RGBA, error) {
	renderWidth, renderHeight := config.RenderSize()

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.MaxDepth = config.ReflectionDepth
	renderConfig.NumWorkers = workers

	raytracer := renderer.NewRaytracer(s, renderWidth, renderHeight, renderConfig, renderer.NewDefaultLogger())
	img, stats, err := raytracer.RenderContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}

	fmt.Printf("Render completed in %v (%.0f pixels/s, %d tiles, %d workers)\n",
		stats.Duration, stats.PixelsPerSecond(), stats.TotalTiles, stats.NumWorkers)

	if config.Supersampling > 1 {
		img = renderer.Downsample(img, config.Width, config.Height)
	}
	return img, nil
}

// createScene resolves a built-in scene name, a scene file in scenes/, or a path to a .json scene
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if scene.IsBuiltinScene(name) {
		return scene.NewBuiltinScene(name)
	}

	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return loaders.LoadScene(name)
	}

	if dir := scene.FindScenesDir(); dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return loaders.LoadScene(path)
		}
	}

	return nil, fmt.Errorf("unknown scene %q (built-in: %s)", name, strings.Join(scene.BuiltinSceneNames(), ", "))
}

// createOutputDir returns output/<scene>, named after the scene file for file scenes
func createOutputDir(sceneName string) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func savePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return nil
}
