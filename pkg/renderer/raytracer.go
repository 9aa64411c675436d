package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Background is the color of rays that escape the scene
var Background = core.NewVec3(0, 0, 0)

// RenderConfig contains configuration for a render
type RenderConfig struct {
	MaxDepth   int // Maximum reflection depth (0 = no reflections)
	TileSize   int // Size of each square tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:   1,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileProgress reports one finished tile
type TileProgress struct {
	Tile      *Tile
	Image     *image.RGBA // Canvas being rendered; pixels inside Tile.Bounds are final
	Completed int         // Tiles finished so far, including this one
	Total     int
}

// Raytracer renders a scene into an RGB raster on a pool of tile workers
type Raytracer struct {
	scene         *scene.Scene
	width, height int
	config        RenderConfig
	logger        core.Logger
	onTile        func(TileProgress)
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, width, height int, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
		logger: logger,
	}
}

// SetTileCallback registers fn to be called as each tile finishes.
// Calls are made one at a time from the goroutine running the render.
func (rt *Raytracer) SetTileCallback(fn func(TileProgress)) {
	rt.onTile = fn
}

// Render renders the full image
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	return rt.RenderContext(context.Background())
}

// RenderContext renders the full image. Once ctx is done, tiles not yet
// started are skipped and ctx.Err() is returned without an image.
func (rt *Raytracer) RenderContext(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)

	tileRenderer := NewTileRenderer(rt.scene, rt.width, rt.height, rt.config.MaxDepth)
	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, max depth %d: %d tiles on %d workers...\n",
		rt.width, rt.height, rt.config.MaxDepth, len(tiles), pool.GetNumWorkers())

	pool.Start()
	defer pool.Stop()

	// Submit all tiles, stopping early on cancellation
	submitted := 0
	for _, tile := range tiles {
		if err := ctx.Err(); err != nil {
			rt.drain(pool, submitted)
			return nil, RenderStats{}, err
		}
		pool.SubmitTask(TileTask{Tile: tile, TaskID: tile.ID, Image: img, Context: ctx})
		submitted++
	}

	stats := RenderStats{
		TotalTiles: len(tiles),
		NumWorkers: pool.GetNumWorkers(),
	}
	// Queued tasks see the cancelled context and are skipped, so Stop returns promptly
	for i := 0; i < submitted; i++ {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, err
		}

		var result TileResult
		select {
		case <-ctx.Done():
			return nil, RenderStats{}, ctx.Err()
		case r, ok := <-pool.Results():
			if !ok {
				return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
			}
			result = r
		}

		if result.Error != nil {
			rt.drain(pool, submitted-i-1)
			return nil, RenderStats{}, result.Error
		}
		stats.TotalPixels += result.Pixels

		if rt.onTile != nil {
			rt.onTile(TileProgress{Tile: tiles[result.TaskID], Image: img, Completed: i + 1, Total: len(tiles)})
		}
	}
	stats.Duration = time.Since(start)

	rt.logger.Printf("Render complete: %d pixels in %v\n", stats.TotalPixels, stats.Duration)

	return img, stats, nil
}

// drain collects outstanding results so workers are never blocked on send
func (rt *Raytracer) drain(pool *WorkerPool, outstanding int) {
	for i := 0; i < outstanding; i++ {
		if _, ok := pool.GetResult(); !ok {
			return
		}
	}
}

// Render traces every pixel of a width×height image with default tiling and
// all CPUs. The output depends only on its arguments.
func Render(s *scene.Scene, width, height, maxDepth int) *image.RGBA {
	config := DefaultRenderConfig()
	config.MaxDepth = maxDepth
	img, _, err := NewRaytracer(s, width, height, config, nil).Render()
	if err != nil {
		// Only reachable with a non-positive size
		return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}
	return img
}

// TraceRay returns the color seen along ray, on the 0-255 scale and unclamped.
// depth counts reflections so far; at maxDepth no reflected ray is cast.
func TraceRay(s *scene.Scene, ray core.Ray, depth, maxDepth int) core.Vec3 {
	surface, hit, ok := s.Intersect(ray)
	if !ok {
		return Background
	}
	mat := surface.GetMaterial()

	color := mat.RawColor().MultiplyVec(s.Ambient())

	origin := hit.OffsetPoint()
	for _, light := range s.Lights {
		sample := light.Sample(origin)
		shadowRay := core.NewRay(origin, sample.Direction)
		if !isVisible(s, shadowRay, sample.Distance) {
			continue
		}
		color = color.Add(mat.Shade(shadowRay, ray, hit).MultiplyVec(sample.Scale))
	}

	if depth >= maxDepth {
		return color
	}

	if mat.IsReflective() {
		reflected := core.NewRay(origin, core.Reflect(ray.Direction, hit.Normal))
		color = color.Add(TraceRay(s, reflected, depth+1, maxDepth).Multiply(mat.Reflectivity))
	}

	return color
}

// isVisible reports whether nothing lies between the shadow ray origin and a
// light lightDist away. Occluders beyond the light do not block it.
func isVisible(s *scene.Scene, shadowRay core.Ray, lightDist float64) bool {
	_, shadowHit, blocked := s.Intersect(shadowRay)
	return !blocked || shadowHit.Dist > lightDist
}
